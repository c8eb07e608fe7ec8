package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryUtteranceGetsATag(t *testing.T) {
	mt := NewMatcher()

	inputs := []string{
		"tell me something interesting",
		"asdf qwerty zxcv",
		"what is the capital of peru",
		"42",
	}
	for _, in := range inputs {
		m := mt.Match(in)
		assert.NotEqual(t, Tag(""), m.Tag, "input %q", in)
		assert.NotEqual(t, TagUnknown, m.Tag, "input %q", in)
	}
}

func TestGreetWinsOverSearch(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("hello there, what can you do")
	assert.Equal(t, TagGreet, m.Tag)
}

func TestSetNameExtractsName(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("My name is Alice")
	assert.Equal(t, TagSetName, m.Tag)
	assert.Equal(t, "alice", m.Slots.Name)
}

func TestTimeInLocation(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("what's the time in Tokyo")
	assert.Equal(t, TagTimeInLocation, m.Tag)
	assert.Equal(t, "tokyo", m.Slots.Location)

	m = mt.Match("what's the time")
	assert.Equal(t, TagTime, m.Tag)
}

func TestSendMessageBothLayouts(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("send a message to john on whatsapp saying hello there")
	assert.Equal(t, TagSendMessage, m.Tag)
	assert.Equal(t, "john", m.Slots.Contact)
	assert.Equal(t, "whatsapp", m.Slots.Platform)
	assert.Equal(t, "hello there", m.Slots.Message)

	m = mt.Match("tell priya that i will be late")
	assert.Equal(t, TagSendMessage, m.Tag)
	assert.Equal(t, "priya", m.Slots.Contact)
	assert.Empty(t, m.Slots.Platform)
	assert.Equal(t, "i will be late", m.Slots.Message)
}

func TestHardwareAndVolume(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("turn on the torch")
	assert.Equal(t, TagToggleHardware, m.Tag)
	assert.Equal(t, "on", m.Slots.State)
	assert.Equal(t, "torch", m.Slots.Device)

	m = mt.Match("turn the volume up")
	assert.Equal(t, TagChangeVolume, m.Tag)
	assert.Equal(t, "up", m.Slots.State)
}

func TestOpenAppPriority(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("open the camera")
	assert.Equal(t, TagOpenMobileApp, m.Tag)
	assert.Equal(t, "camera", m.Slots.AppName)

	m = mt.Match("open chrome")
	assert.Equal(t, TagOpenApp, m.Tag)
	assert.Equal(t, "chrome", m.Slots.AppName)
}

func TestWeatherOptionalLocation(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("what's the weather in london")
	assert.Equal(t, TagGetWeather, m.Tag)
	assert.Equal(t, "london", m.Slots.Location)

	m = mt.Match("what's the weather")
	assert.Equal(t, TagGetWeather, m.Tag)
	assert.Empty(t, m.Slots.Location)
}

func TestWakeWordPrefixStrippedOnce(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("hey senorita what's the time")
	assert.Equal(t, TagTime, m.Tag)

	m = mt.Match("hey senorita")
	assert.Equal(t, TagWakeWord, m.Tag)
	assert.Equal(t, "hey senorita", m.Slots.Phrase)

	m = mt.Match("hey babe")
	assert.Equal(t, TagWakeWord, m.Tag)
}

func TestReminderAndNotes(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("remind me to buy milk tomorrow")
	assert.Equal(t, TagSetReminder, m.Tag)
	assert.Equal(t, "buy milk tomorrow", m.Slots.Query)

	m = mt.Match("what's on my list")
	assert.Equal(t, TagRecallNotes, m.Tag)

	m = mt.Match("clear my list")
	assert.Equal(t, TagClearNotes, m.Tag)
}

func TestMediaRequestCapturesQuery(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("play shape of you")
	assert.Equal(t, TagMediaRequest, m.Tag)
	assert.Equal(t, "shape of you", m.Slots.Query)

	m = mt.Match("show me pictures of cats")
	assert.Equal(t, TagMediaRequest, m.Tag)
	assert.Equal(t, "pictures of cats", m.Slots.Query)
}

func TestDiacriticsAreFolded(t *testing.T) {
	mt := NewMatcher()

	m := mt.Match("tell me about café culture")
	assert.Equal(t, TagSearch, m.Tag)
	assert.Equal(t, "cafe culture", m.Slots.Query)
}
