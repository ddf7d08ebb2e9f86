package llm

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const defaultImageMediaType = "image/jpeg"

// ParseImage accepts either a data URL ("data:image/png;base64,....") or a bare
// base64 payload, which is assumed to be JPEG.
func ParseImage(raw string) (Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Image{}, fmt.Errorf("empty image payload")
	}

	mediaType := defaultImageMediaType
	data := raw
	if strings.HasPrefix(raw, "data:") {
		header, payload, ok := strings.Cut(raw, ",")
		if !ok {
			return Image{}, fmt.Errorf("malformed data url")
		}
		header = strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(header, ";base64") {
			return Image{}, fmt.Errorf("data url is not base64 encoded")
		}
		if mt := strings.TrimSuffix(header, ";base64"); mt != "" {
			mediaType = mt
		}
		data = payload
	}

	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return Image{}, fmt.Errorf("invalid base64 image: %w", err)
	}
	return Image{MediaType: mediaType, Data: data}, nil
}

// DataURL renders the image as a data URL.
func (i Image) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}

// Bytes decodes the base64 payload.
func (i Image) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(i.Data)
}
