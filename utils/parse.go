package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON recovers the outermost JSON object embedded in a raw model
// response. Models frequently wrap JSON in markdown fences or surround it
// with prose; both are stripped before extraction.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if match := fencedBlockRegex.FindStringSubmatch(s); len(match) > 1 {
		s = strings.TrimSpace(match[1])
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// ParseInto extracts the JSON object from a raw model response and
// unmarshals it into v. It is the fallback used when a provider has no
// structured-output contract to rely on.
func ParseInto(raw string, v any) error {
	extracted, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(extracted), v); err != nil {
		return fmt.Errorf("unmarshal extracted JSON: %w", err)
	}
	return nil
}
