package readable_hash

import (
	"strings"

	"github.com/wbrown/readable_hash/types"
)

// stripMarkers removes the word-start and word-end markers from raw token
// text.
func stripMarkers(text string) string {
	text = strings.TrimPrefix(text, types.StartMarker)
	return strings.TrimSuffix(text, types.EndMarker)
}

// TokenText
// Returns the display text of a token, or "" for ids outside the model.
func (model *WordModel) TokenText(token Token) string {
	if int(token) >= len(model.Texts) {
		return ""
	}
	return model.Texts[token]
}

// Get
// Looks up raw token text, markers included, and returns its id. If the
// text is not found, then nil is returned.
func (model *WordModel) Get(text string) *Token {
	for idx, raw := range model.Tokens {
		if raw == text {
			token := Token(idx)
			return &token
		}
	}
	return nil
}

// Decode joins the display text of a token sequence.
func (model *WordModel) Decode(tokens Tokens) string {
	var text strings.Builder
	for _, token := range tokens {
		text.WriteString(model.TokenText(token))
	}
	return text.String()
}
