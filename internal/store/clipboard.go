package store

import (
	"encoding/json"
	"strings"

	"github.com/ivlev/datasettag/internal/tags"
)

// EncodeClipboard serializes one image entry as the copy/paste payload.
func EncodeClipboard(info ImageInfo) (string, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeClipboard parses a pasted payload. Anything that is not a complete
// image entry with known category names reports ok == false; callers treat
// that as an empty paste.
func DecodeClipboard(text string) (info ImageInfo, groups []tags.Group, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || !strings.HasPrefix(text, "{") {
		return ImageInfo{}, nil, false
	}
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return ImageInfo{}, nil, false
	}
	if info.Categories == nil {
		return ImageInfo{}, nil, false
	}
	for _, ct := range info.Categories {
		if ct.Tags == nil {
			return ImageInfo{}, nil, false
		}
	}
	groups, err := info.Groups()
	if err != nil {
		return ImageInfo{}, nil, false
	}
	return info, groups, true
}
