package domain

// Identity - числовой идентификатор чата или пользователя Telegram.
type Identity int64

// MessageID - идентификатор сообщения внутри конкретного чата.
// Telegram нумерует сообщения с единицы, поэтому нулевое значение означает "нет сообщения".
type MessageID int

// Role определяет, кем является отправитель входящего события.
type Role int

const (
	RoleCorrespondent Role = iota
	RoleOperator
)

func (r Role) String() string {
	if r == RoleOperator {
		return "operator"
	}
	return "correspondent"
}

// Profile содержит поля профиля отправителя, из которых строится баннер.
type Profile struct {
	ID        Identity
	FirstName string
	LastName  string
	Username  string
}

// FullName возвращает имя и фамилию через пробел. Для пустого профиля возвращает пустую строку.
func (p Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// Kind - тег варианта полезной нагрузки.
// Порядок констант совпадает с приоритетом выбора варианта при разборе сообщения.
type Kind int

const (
	KindText Kind = iota
	KindPhoto
	KindVideo
	KindDocument
	KindVoice
	KindAudio
	KindSticker
	KindUnsupported
)

var kindNames = [...]string{
	KindText:        "text",
	KindPhoto:       "photo",
	KindVideo:       "video",
	KindDocument:    "document",
	KindVoice:       "voice",
	KindAudio:       "audio",
	KindSticker:     "sticker",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// PhotoSize - один из вариантов разрешения фотографии.
type PhotoSize struct {
	FileID   string
	Width    int
	Height   int
	FileSize int
}

// Payload - содержимое входящего сообщения. Активен ровно один вариант, заданный Kind.
//   - KindText: Text
//   - KindPhoto: Photo (все доступные разрешения) и Caption
//   - KindVideo, KindDocument, KindAudio: FileID и Caption
//   - KindVoice, KindSticker: FileID
//   - KindUnsupported: поля не используются
type Payload struct {
	Kind    Kind
	Text    string
	FileID  string
	Caption string
	Photo   []PhotoSize
}

// TextPayload создает текстовую нагрузку.
func TextPayload(text string) Payload {
	return Payload{Kind: KindText, Text: text}
}

// PhotoPayload создает нагрузку-фотографию из набора разрешений.
func PhotoPayload(sizes []PhotoSize, caption string) Payload {
	return Payload{Kind: KindPhoto, Photo: sizes, Caption: caption}
}

// FilePayload создает нагрузку для видео, документа, голосового, аудио или стикера.
func FilePayload(kind Kind, fileID, caption string) Payload {
	return Payload{Kind: kind, FileID: fileID, Caption: caption}
}

// UnsupportedPayload создает нагрузку для нераспознанного типа сообщения.
func UnsupportedPayload() Payload {
	return Payload{Kind: KindUnsupported}
}

// Event - входящее сообщение, уже отвязанное от транспорта.
type Event struct {
	// ChatID - чат, в который отправляются подтверждения и предупреждения.
	ChatID    Identity
	MessageID MessageID
	Sender    Profile
	Payload   Payload
	// ReplyToID - сообщение, на которое отвечает отправитель; 0, если это не ответ.
	ReplyToID MessageID
	// Command - имя команды без слеша ("start") или пустая строка.
	Command string
}

// IsReply сообщает, является ли событие ответом на другое сообщение.
func (e Event) IsReply() bool {
	return e.ReplyToID != 0
}

// Outbound - одно исходящее сообщение, готовое к отправке через транспорт.
type Outbound struct {
	Kind    Kind
	Text    string
	FileID  string
	Caption string
}
