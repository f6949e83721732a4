package observability

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// modelEncodings maps a model id to its tiktoken encoding. A model id
// that starts with one of these keys takes that key's encoding; any
// other id falls back to cl100k_base, which is close enough for an
// estimate that is never authoritative.
var modelEncodings = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4o-mini":   "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
}

var (
	encodersMu sync.Mutex
	encoders   = map[string]*tiktoken.Tiktoken{}
)

func encodingFor(model string) string {
	if enc, ok := modelEncodings[model]; ok {
		return enc
	}
	for prefix, enc := range modelEncodings {
		if len(model) >= len(prefix) && model[:len(prefix)] == prefix {
			return enc
		}
	}
	return "cl100k_base"
}

func getEncoder(encoding string) (*tiktoken.Tiktoken, error) {
	encodersMu.Lock()
	defer encodersMu.Unlock()

	if enc, ok := encoders[encoding]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	encoders[encoding] = enc
	return enc, nil
}

// EstimateTokens returns a token count for text using tiktoken when
// the model's encoding is loadable, falling back to a CJK-aware
// character estimate otherwise. This is a last-resort estimate; no
// provider engine in this module calls it, and it never replaces a
// provider-reported count.
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}

	enc, err := getEncoder(encodingFor(model))
	if err == nil {
		return len(enc.Encode(text, nil, nil))
	}

	return estimateByCharCount(text)
}

func estimateByCharCount(text string) int {
	total := utf8.RuneCountInString(text)
	cjk := 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		}
	}
	estimated := int(float64(cjk)/1.5 + float64(total-cjk)/4.0)
	if estimated == 0 {
		estimated = 1
	}
	return estimated
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK unified ideographs
		(r >= 0x3040 && r <= 0x30FF) || // hiragana, katakana
		(r >= 0xAC00 && r <= 0xD7A3) // hangul syllables
}
