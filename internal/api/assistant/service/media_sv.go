package assistantService

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/pkg/images"
	"ProjectSenorita/pkg/utils"

	"github.com/sirupsen/logrus"
)

var platformPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"youtube", regexp.MustCompile(`\byoutube\b|\byt\b`)},
	{"spotify", regexp.MustCompile(`\bspotify\b`)},
	{"jiosaavn", regexp.MustCompile(`\bjiosaavn\b|\bsaavn\b`)},
}

var imageVocabPattern = regexp.MustCompile(`\b(?:image|images|picture|pictures|photo|photos|pic|pics)\b`)

func detectPlatform(text string) string {
	lower := strings.ToLower(text)
	for _, p := range platformPatterns {
		if p.pattern.MatchString(lower) {
			return p.name
		}
	}
	return ""
}

// stripPlatformPhrase removes the platform mention from a media query so
// "shape of you on spotify" searches for just the song. Longest phrase
// wins: " in <platform>" and " on <platform>" before the bare name.
func stripPlatformPhrase(query, platform string) string {
	lower := strings.ToLower(query)
	for _, alias := range platformAliases(platform) {
		for _, phrase := range []string{" in " + alias, " on " + alias, alias} {
			if idx := strings.Index(lower, phrase); idx >= 0 {
				stripped := strings.TrimSpace(lower[:idx] + lower[idx+len(phrase):])
				if stripped != "" {
					return stripped
				}
			}
		}
	}
	return strings.TrimSpace(lower)
}

func platformAliases(platform string) []string {
	switch platform {
	case "youtube":
		return []string{"youtube", "yt"}
	case "jiosaavn":
		return []string{"jiosaavn", "saavn"}
	default:
		return []string{platform}
	}
}

func platformDeepLink(platform, query string) (link, display string) {
	escaped := url.QueryEscape(query)
	switch platform {
	case "youtube", "yt":
		return "vnd.youtube://www.youtube.com/results?search_query=" + escaped, "YouTube"
	case "spotify":
		return "spotify:search:" + escaped, "Spotify"
	case "jiosaavn", "saavn":
		return "jiosaavn://search/" + escaped, "JioSaavn"
	default:
		// Unknown platforms still get the user somewhere useful.
		return "https://www.google.com/search?q=" + escaped + "+" + url.QueryEscape(platform) + "+music+video",
			"Google for " + platform
	}
}

func wantsImages(query string) bool {
	return imageVocabPattern.MatchString(strings.ToLower(query))
}

func (s *assistantService) handleMediaRequest(ctx context.Context, session *entity.SessionContext, query string) assistant.Envelope {
	query = strings.TrimSpace(query)

	if query != "" && wantsImages(query) {
		return s.handleImageSearch(ctx, session, query)
	}

	return s.handlePlayRequest(session, query)
}

// handlePlayRequest covers play_music, play_video and generic media
// requests: launch directly when the platform is named, otherwise arm
// the platform question for the next turn.
func (s *assistantService) handlePlayRequest(session *entity.SessionContext, query string) assistant.Envelope {
	query = strings.TrimSpace(query)
	if query == "" {
		session.PendingMediaQuery = "generic media"
		session.Topic = entity.TopicMediaContent
		return assistant.TextEnvelope("I can definitely play something! What would you like to hear or watch, and on which platform, like YouTube or Spotify?")
	}

	if platform := detectPlatform(query); platform != "" {
		return s.openSearchLink(session, platform, stripPlatformPhrase(query, platform))
	}

	session.PendingMediaQuery = query
	session.Topic = entity.TopicMediaContent
	return assistant.TextEnvelope(
		fmt.Sprintf("I can play **%s**! On which platform would you like me to search? For example, tell me 'YouTube' or 'Spotify'.", query),
	)
}

// resolvePlatformContinuation consumes the answer to a pending platform
// question. Only turns that carry a free-text query are treated as an
// answer; anything in it that names a platform wins, otherwise the first
// word is taken as the platform.
func (s *assistantService) resolvePlatformContinuation(session *entity.SessionContext, querySlot string) (assistant.Envelope, bool) {
	answer := strings.ToLower(strings.TrimSpace(querySlot))
	if answer == "" {
		return assistant.Envelope{}, false
	}

	platform := detectPlatform(answer)
	if platform == "" {
		platform = strings.Fields(answer)[0]
	}

	query := session.PendingMediaQuery
	session.PendingMediaQuery = ""
	return s.openSearchLink(session, platform, query), true
}

func (s *assistantService) openSearchLink(session *entity.SessionContext, platform, query string) assistant.Envelope {
	query = strings.TrimSpace(query)
	if query == "" {
		return assistant.TextEnvelope("What would you like me to play?")
	}

	link, display := platformDeepLink(platform, query)

	session.PendingMediaQuery = ""
	session.Topic = entity.TopicMediaContent

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"platform":   platform,
	}).Info("Opening media search link")

	return assistant.Envelope{
		Type:         assistant.TypeMediaDeepLink,
		URL:          link,
		Query:        query,
		Platform:     platform,
		TextResponse: fmt.Sprintf("Searching for '%s' and opening the results on **%s** now. Enjoy!", utils.Title(query), display),
	}
}

func (s *assistantService) handleImageSearch(ctx context.Context, session *entity.SessionContext, query string) assistant.Envelope {
	if s.images == nil {
		return assistant.TextEnvelope("Sorry, image search isn't available right now.")
	}

	results, err := s.images.Search(ctx, query, 1, images.PageSize)
	if err != nil || len(results) == 0 {
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("Image search failed")
		}
		// A failed fresh search leaves nothing to paginate.
		session.LastImageQuery = ""
		session.LastImageOffset = 1
		return assistant.TextEnvelope(fmt.Sprintf("Sorry, I couldn't find any relevant images for '%s'.", query))
	}

	session.LastImageQuery = query
	session.LastImageOffset = 1
	session.Topic = entity.TopicImageSearch

	return assistant.Envelope{
		Type:         assistant.TypeImageList,
		Query:        query,
		StartIndex:   1,
		Images:       results,
		TextResponse: fmt.Sprintf("Here are some images of %s.", query),
	}
}

func (s *assistantService) handleImagePagination(ctx context.Context, session *entity.SessionContext) assistant.Envelope {
	if session.LastImageQuery == "" {
		return assistant.TextEnvelope("More of what? Ask me to show you some pictures first.")
	}
	if s.images == nil {
		return assistant.TextEnvelope("Sorry, image search isn't available right now.")
	}

	next := session.LastImageOffset + images.PageSize
	results, err := s.images.Search(ctx, session.LastImageQuery, next, images.PageSize)
	if err != nil || len(results) == 0 {
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("Image pagination failed")
		}
		// Keep the query so an unrelated follow-up can still succeed.
		return assistant.TextEnvelope(
			fmt.Sprintf("That's all I could find for '%s'.", session.LastImageQuery),
		)
	}

	session.LastImageOffset = next

	return assistant.Envelope{
		Type:         assistant.TypeImageList,
		Query:        session.LastImageQuery,
		StartIndex:   next,
		Images:       results,
		TextResponse: fmt.Sprintf("Here are more images of %s.", session.LastImageQuery),
	}
}
