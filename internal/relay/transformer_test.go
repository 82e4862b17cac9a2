package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-relay-bot/internal/domain"
)

func TestBuildBanner(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		banner := BuildBanner(domain.Profile{ID: 42, FirstName: "Jane", LastName: "Doe", Username: "jdoe"})

		want := "📨 New message from:\n" +
			"👤 Name: Jane Doe\n" +
			"🆔 ID: 42\n" +
			"📱 Username: @jdoe\n" +
			strings.Repeat("─", 30) + "\n"
		assert.Equal(t, want, banner)
	})

	t.Run("missing fields", func(t *testing.T) {
		banner := BuildBanner(domain.Profile{ID: 42, FirstName: "Jane", LastName: "Doe"})
		assert.Contains(t, banner, "Jane Doe")
		assert.Contains(t, banner, "42")
		assert.Contains(t, banner, "No username")
	})

	t.Run("empty name", func(t *testing.T) {
		banner := BuildBanner(domain.Profile{ID: 9})
		assert.Contains(t, banner, "👤 Name: Unknown\n")
	})
}

func TestBuildOutbound_ToOperator(t *testing.T) {
	banner := BuildBanner(domain.Profile{ID: 7, FirstName: "Jane"})

	testCases := []struct {
		name    string
		payload domain.Payload
		want    []domain.Outbound
	}{
		{
			name:    "text",
			payload: domain.TextPayload("hello"),
			want:    []domain.Outbound{{Kind: domain.KindText, Text: banner + "hello"}},
		},
		{
			name: "photo picks largest",
			payload: domain.PhotoPayload([]domain.PhotoSize{
				{FileID: "small", Width: 90, Height: 90, FileSize: 1000},
				{FileID: "large", Width: 1280, Height: 960, FileSize: 90000},
				{FileID: "medium", Width: 320, Height: 240, FileSize: 9000},
			}, "look"),
			want: []domain.Outbound{{Kind: domain.KindPhoto, FileID: "large", Caption: banner + "look"}},
		},
		{
			name: "photo tie broken by file size",
			payload: domain.PhotoPayload([]domain.PhotoSize{
				{FileID: "a", Width: 100, Height: 100, FileSize: 10},
				{FileID: "b", Width: 100, Height: 100, FileSize: 20},
			}, ""),
			want: []domain.Outbound{{Kind: domain.KindPhoto, FileID: "b", Caption: banner}},
		},
		{
			name:    "video",
			payload: domain.FilePayload(domain.KindVideo, "vid", "clip"),
			want:    []domain.Outbound{{Kind: domain.KindVideo, FileID: "vid", Caption: banner + "clip"}},
		},
		{
			name:    "document without caption",
			payload: domain.FilePayload(domain.KindDocument, "doc", ""),
			want:    []domain.Outbound{{Kind: domain.KindDocument, FileID: "doc", Caption: banner}},
		},
		{
			name:    "audio",
			payload: domain.FilePayload(domain.KindAudio, "aud", "song"),
			want:    []domain.Outbound{{Kind: domain.KindAudio, FileID: "aud", Caption: banner + "song"}},
		},
		{
			name:    "voice gets banner only",
			payload: domain.FilePayload(domain.KindVoice, "v1", ""),
			want:    []domain.Outbound{{Kind: domain.KindVoice, FileID: "v1", Caption: banner}},
		},
		{
			name:    "sticker is preceded by notice",
			payload: domain.FilePayload(domain.KindSticker, "st", ""),
			want: []domain.Outbound{
				{Kind: domain.KindText, Text: banner + "[Sticker received]"},
				{Kind: domain.KindSticker, FileID: "st"},
			},
		},
		{
			name:    "unsupported becomes notice",
			payload: domain.UnsupportedPayload(),
			want:    []domain.Outbound{{Kind: domain.KindText, Text: banner + "[Unsupported message type]"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildOutbound(tc.payload, banner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildOutbound_ToCorrespondent(t *testing.T) {
	t.Run("text verbatim", func(t *testing.T) {
		got, err := BuildOutbound(domain.TextPayload("hi"), "")
		require.NoError(t, err)
		assert.Equal(t, []domain.Outbound{{Kind: domain.KindText, Text: "hi"}}, got)
	})

	t.Run("caption verbatim", func(t *testing.T) {
		got, err := BuildOutbound(domain.FilePayload(domain.KindDocument, "doc", "report"), "")
		require.NoError(t, err)
		assert.Equal(t, []domain.Outbound{{Kind: domain.KindDocument, FileID: "doc", Caption: "report"}}, got)
	})

	t.Run("sticker without notice", func(t *testing.T) {
		got, err := BuildOutbound(domain.FilePayload(domain.KindSticker, "st", ""), "")
		require.NoError(t, err)
		assert.Equal(t, []domain.Outbound{{Kind: domain.KindSticker, FileID: "st"}}, got)
	})

	t.Run("unsupported is rejected", func(t *testing.T) {
		_, err := BuildOutbound(domain.UnsupportedPayload(), "")
		assert.ErrorIs(t, err, ErrUnsupportedPayload)
	})
}

func TestBuildOutbound_PhotoWithoutSizes(t *testing.T) {
	_, err := BuildOutbound(domain.PhotoPayload(nil, "x"), "banner")
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}
