package relay

import "fmt"

// DefaultOwnerName используется в текстах, если имя оператора не задано.
const DefaultOwnerName = "the owner"

// Texts содержит все тексты, которые бот показывает пользователям.
type Texts struct {
	OperatorGreeting      string
	CorrespondentGreeting string
	OperatorAck           string
	// OperatorFailure - формат с одним %s для причины ошибки доставки.
	OperatorFailure      string
	NoReplyTarget        string
	UnknownTarget        string
	UnsupportedReply     string
	CorrespondentAck     string
	CorrespondentFailure string
}

// DefaultTexts возвращает стандартные тексты с подставленным именем оператора.
func DefaultTexts(ownerName string) Texts {
	if ownerName == "" {
		ownerName = DefaultOwnerName
	}
	return Texts{
		OperatorGreeting: fmt.Sprintf("👋 Welcome back, %s! You're all set.\n\n"+
			"Reply to any forwarded message to respond to users.", ownerName),
		CorrespondentGreeting: fmt.Sprintf("👋 Hi! Please send a message to %s, they'll reply soon.", ownerName),
		OperatorAck:           "✅ Message sent!",
		OperatorFailure:       "❌ Failed to send message: %s",
		NoReplyTarget:         "⚠️ Please reply to a forwarded message to answer a user.",
		UnknownTarget:         "⚠️ Cannot find the original sender. Please reply to a forwarded message.",
		UnsupportedReply:      "⚠️ This message type cannot be relayed.",
		CorrespondentAck:      fmt.Sprintf("✅ Your message has been sent to %s. They'll reply soon!", ownerName),
		CorrespondentFailure:  "❌ Sorry, there was an error sending your message. Please try again.",
	}
}
