package youtube

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

var dataURIPattern = regexp.MustCompile(`^data:([\w.+-]+/[\w.+-]+);base64,(.+)$`)

// ParseDataURI decodes a data:<mime>;base64,<data> URI into its mime type and
// raw bytes. Malformed input is rejected here, before any network call.
func ParseDataURI(dataURI string) (string, []byte, error) {
	matches := dataURIPattern.FindStringSubmatch(dataURI)
	if matches == nil {
		return "", nil, fmt.Errorf("media must be a data:<mime>;base64,<data> URI")
	}
	raw, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload in data URI: %w", err)
	}
	return matches[1], raw, nil
}
