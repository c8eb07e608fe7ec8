package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher classifies utterances with an ordered rule table.
type Matcher struct {
	rules []rule
}

func NewMatcher() *Matcher {
	return &Matcher{rules: defaultRules()}
}

// Match returns exactly one tag for any input. The wake-word prefix is
// stripped in a single preprocessing pass before matching; a bare wake
// phrase is its own terminal intent. The trailing catch-all rule makes
// the table total for non-empty text.
func (mt *Matcher) Match(text string) Match {
	text = normalize(text)

	if phrase, rest, ok := stripWakePrefix(text); ok {
		if rest == "" {
			return Match{Tag: TagWakeWord, Slots: Slots{Phrase: phrase}}
		}
		text = rest
	}

	if text == "" {
		return Match{Tag: TagUnknown}
	}

	for _, r := range mt.rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			return Match{Tag: r.tag, Slots: r.extract(m)}
		}
	}

	return Match{Tag: TagUnknown}
}

func stripWakePrefix(text string) (phrase, rest string, ok bool) {
	for _, w := range wakePhrases {
		if text == w {
			return w, "", true
		}
		if strings.HasPrefix(text, w+" ") {
			return w, strings.TrimSpace(text[len(w):]), true
		}
	}
	return "", "", false
}

// normalize lowercases, folds diacritics and collapses whitespace.
// Punctuation is kept because several rules anchor on apostrophes.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	if folded, _, err := transform.String(t, text); err == nil {
		text = folded
	}

	return strings.Join(strings.Fields(text), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
