package browser

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
)

// Type enters text through real keyboard events (keydown/keyup per char),
// which the portal's form validation listens for.
func Type(el *rod.Element, text string) error {
	return el.Type(textKeys(text)...)
}

// textKeys maps each rune to a key event. Indexing by byte offset would leave
// NUL keys behind every accented character in Spanish field values.
func textKeys(text string) []input.Key {
	keys := make([]input.Key, 0, len(text))
	for _, r := range text {
		keys = append(keys, input.Key(r))
	}
	return keys
}

// ClearAndType empties the field before typing, so re-login attempts don't
// concatenate credentials.
func ClearAndType(el *rod.Element, text string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	if err := el.Input(""); err != nil {
		return err
	}
	return Type(el, text)
}
