package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	first, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, first, 26)

	second, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Shape Of You", Title("shape of you"))
	assert.Equal(t, "New York", Title("new york"))
	assert.Equal(t, "", Title(""))
}

func TestCleanMarkdown(t *testing.T) {
	assert.Equal(t, "bold and plain", CleanMarkdown("**bold** and ***plain***"))
	assert.Equal(t, "nothing here", CleanMarkdown("nothing here"))
}

func TestTrimMessagePunctuation(t *testing.T) {
	assert.Equal(t, "hello there", TrimMessagePunctuation("hello there."))
	assert.Equal(t, "really", TrimMessagePunctuation(" really! "))
	assert.Equal(t, "keep going..", TrimMessagePunctuation("keep going..."))
	assert.Equal(t, "", TrimMessagePunctuation(""))
}
