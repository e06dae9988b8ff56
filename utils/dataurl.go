package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeImageDataURL decodes a data-URL-style base64 payload as sent by the
// capture client ("data:image/jpeg;base64,<payload>"). A bare base64 string
// without the header is accepted too.
func DecodeImageDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URL: missing comma separator")
		}
		payload = dataURL[idx+1:]
	}

	if payload == "" {
		return nil, fmt.Errorf("malformed data URL: empty payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, nil
}
