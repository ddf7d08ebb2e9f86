package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImage(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantMediaType string
		wantData      string
		wantErr       bool
	}{
		{"data url", "data:image/png;base64,aGVsbG8=", "image/png", "aGVsbG8=", false},
		{"bare base64 defaults to jpeg", "aGVsbG8=", "image/jpeg", "aGVsbG8=", false},
		{"not base64", "data:image/png;base64,@@@", "", "", true},
		{"missing comma", "data:image/png;base64", "", "", true},
		{"not base64 encoded url", "data:image/png,hello", "", "", true},
		{"empty", "  ", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseImage(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMediaType, img.MediaType)
			assert.Equal(t, tt.wantData, img.Data)
		})
	}
}

func TestImage_RoundTrip(t *testing.T) {
	img, err := ParseImage("data:image/webp;base64,aGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "data:image/webp;base64,aGVsbG8=", img.DataURL())

	data, err := img.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestNewSendError(t *testing.T) {
	t.Run("deadline is a timeout", func(t *testing.T) {
		err := NewSendError(ProviderOpenAI, fmt.Errorf("post: %w", context.DeadlineExceeded))
		assert.True(t, err.Timeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("existing send error is kept", func(t *testing.T) {
		inner := &SendError{Provider: ProviderGoogle, Message: "quota"}
		err := NewSendError(ProviderOpenAI, fmt.Errorf("wrapped: %w", inner))
		assert.Same(t, inner, err)
	})

	t.Run("plain failure", func(t *testing.T) {
		err := NewSendError(ProviderMistral, errors.New("401 unauthorized"))
		assert.False(t, err.Timeout)
		assert.Equal(t, ProviderMistral, err.Provider)
		assert.Equal(t, "401 unauthorized", err.Message)
	})
}
