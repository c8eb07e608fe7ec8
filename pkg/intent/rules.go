package intent

import (
	"regexp"
	"strings"
)

// rule pairs a pattern with the extractor that maps its capture groups to
// named slots. Rules are evaluated in order and the first match wins, so
// the position of a rule in the table IS its priority.
type rule struct {
	tag     Tag
	pattern *regexp.Regexp
	extract func(m []string) Slots
}

func queryExtractor(m []string) Slots    { return Slots{Query: strings.TrimSpace(m[1])} }
func locationExtractor(m []string) Slots { return Slots{Location: strings.TrimSpace(m[1])} }
func noSlots([]string) Slots             { return Slots{} }

func messageExtractor(m []string) Slots {
	// The platform group is optional in both layouts; an unmatched
	// group leaves the slot empty and the router defaults it to sms.
	return Slots{
		Contact:  strings.TrimSpace(m[1]),
		Platform: strings.TrimSpace(m[2]),
		Message:  strings.TrimSpace(m[3]),
	}
}

// defaultRules is the ordered priority list. Ambiguous utterances are
// resolved by position, not by specificity: personalization first, then
// conversation, direct actions, notes, media, and finally the catch-all
// search rule that guarantees every utterance gets a tag.
func defaultRules() []rule {
	return []rule{
		{TagSetName, regexp.MustCompile(`\b(?:my name is|i am) (.+)`),
			func(m []string) Slots { return Slots{Name: strings.TrimSpace(m[1])} }},
		{TagRecallName, regexp.MustCompile(`\bwhat(?:'s| is) my name\b`), noSlots},

		{TagTimeInLocation, regexp.MustCompile(`\bwhat(?:'s| is) the time in (.+)`), locationExtractor},
		{TagTime, regexp.MustCompile(`\bwhat(?:'s| is) the time(?: now)?\b`), noSlots},

		{TagHowAreYou, regexp.MustCompile(`\b(?:how are you|how do you do|how's it going)\b`), noSlots},
		{TagGreet, regexp.MustCompile(`^(?:hi|hello|hey|good (?:morning|afternoon|evening))\b`), noSlots},

		{TagSendMessage, regexp.MustCompile(`\bsend (?:a )?(?:message|text) to (\S+?)(?: on (whatsapp|sms|telegram|messenger))? (?:saying|that) (.+)`), messageExtractor},
		{TagSendMessage, regexp.MustCompile(`\btell (\S+?)(?: on (whatsapp|sms|telegram|messenger))? that (.+)`), messageExtractor},

		{TagChangeVolume, regexp.MustCompile(`\b(?:turn|set|change) (?:the )?volume (?:to )?(up|down|max|min)\b`),
			func(m []string) Slots { return Slots{State: m[1]} }},
		{TagToggleHardware, regexp.MustCompile(`\bturn (on|off) (?:the )?(torch|flashlight|wifi|bluetooth|data)\b`),
			func(m []string) Slots { return Slots{State: m[1], Device: m[2]} }},
		{TagOpenMobileApp, regexp.MustCompile(`\bopen (?:the )?(camera|settings|gallery|photos)\b`),
			func(m []string) Slots { return Slots{AppName: m[1]} }},
		{TagOpenApp, regexp.MustCompile(`\bopen (.+)`),
			func(m []string) Slots { return Slots{AppName: strings.TrimSpace(m[1])} }},

		{TagGetWeather, regexp.MustCompile(`\b(?:what's|what is|how is) the weather(?: like)?(?: in| at)?(?: (.+))?`), locationExtractor},
		{TagGetNews, regexp.MustCompile(`\b(?:what's|what are|tell me) the news(?: about| on)?(?: (.+))?`),
			func(m []string) Slots { return Slots{Topic: strings.TrimSpace(m[1])} }},
		{TagGetApod, regexp.MustCompile(`\b(?:what's|show me) the nasa picture of the day\b`), noSlots},
		{TagGetTrivia, regexp.MustCompile(`\b(?:tell me|give me) a trivia(?: question)?\b`), noSlots},

		{TagSetCalendarEvent, regexp.MustCompile(`\b(?:add|create|schedule) (?:an? |the )?(?:event|meeting|appointment)\b(?: (?:for|about|to|with))?\s*(.*)`), queryExtractor},
		{TagSetCalendarEvent, regexp.MustCompile(`\bput (.+) on my calendar\b`), queryExtractor},

		{TagSetReminder, regexp.MustCompile(`\b(?:remember to|take a note|add to my list|note|remind me to)(?: that)? (.+)`), queryExtractor},
		{TagRecallNotes, regexp.MustCompile(`\b(?:what is in my notes|what do i need to remember|show me my reminders|read my list|what's on my list)\b`), noSlots},
		{TagClearNotes, regexp.MustCompile(`\b(?:clear|delete|erase) (?:my )?(?:notes and reminders|notes|reminders|list)\b`), noSlots},

		{TagGetDirections, regexp.MustCompile(`\b(?:show me|get|navigate) directions (?:to |for |me to )?(.+)`), queryExtractor},

		{TagPlayMusic, regexp.MustCompile(`\b(?:play|listen to) (?:the |some )?(?:song|track|album|music)\b(?: (?:by|from|of|called))?\s*(.*)`), queryExtractor},
		{TagPlayVideo, regexp.MustCompile(`\b(?:play|watch) (?:the |a )?(?:video|clip|movie|film)\b(?: (?:of|about|called))?\s*(.*)`), queryExtractor},
		{TagMediaRequest, regexp.MustCompile(`^(?:show|display|get|give|play|search)(?: me| an| a)? (?:picture of |image of |photo of |video of |clip of |song of |music of )?(.+)`), queryExtractor},

		// Catch-all: anything left is a general knowledge search.
		{TagSearch, regexp.MustCompile(`^(?:what is|what's|who is|who's|tell me about|how to|where is|when did|why is)?\s*(.+)`), queryExtractor},
	}
}

// wakePhrases are transparent prefixes: stripped before matching, or a
// terminal wake_word intent when spoken alone.
var wakePhrases = []string{"hey baby", "hey babe", "hey senorita"}
