package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// CountTokens estimates the number of tokens in text for the given model.
// Falls back to the cl100k_base encoding for unknown models and returns 0
// when no encoding can be loaded at all, so callers can use the estimate
// for diagnostics without a hard dependency on the tokenizer data.
func CountTokens(model, text string) int {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0
		}
	}
	return len(encoding.Encode(text, nil, nil))
}
