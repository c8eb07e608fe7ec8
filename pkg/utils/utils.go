package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

var titleCaser = cases.Title(language.English)

// Title capitalizes each word, for echoing city names and song titles
// back to the user the way they would be written.
func Title(s string) string {
	return titleCaser.String(s)
}

// CleanMarkdown strips the bold and italic markers language models like
// to sprinkle into plain-text replies.
func CleanMarkdown(s string) string {
	s = strings.ReplaceAll(s, "***", "")
	s = strings.ReplaceAll(s, "**", "")
	return s
}

// TrimMessagePunctuation drops a single trailing sentence terminator so
// dictated messages don't end with a stray period.
func TrimMessagePunctuation(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 0 {
		switch s[len(s)-1] {
		case '.', '!', '?':
			s = s[:len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
