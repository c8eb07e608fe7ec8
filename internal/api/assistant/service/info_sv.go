package assistantService

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/pkg/redis"
	"ProjectSenorita/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	weatherCacheTTL = 10 * time.Minute
	apodCacheTTL    = 24 * time.Hour
)

func (s *assistantService) handleSetName(session *entity.SessionContext, prof *entity.UserProfile, name string) assistant.Envelope {
	name = strings.TrimSpace(strings.ReplaceAll(name, "*", ""))
	if name == "" {
		return assistant.TextEnvelope("I didn't quite catch your name.")
	}

	prof.SetName(name)
	if err := s.profiles.Save(session.UserID, prof); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"error":   err.Error(),
		}).Error("Failed to save profile after name update")
		return assistant.TextEnvelope("Sorry, I couldn't save your name just now. Please try again.")
	}

	return assistant.TextEnvelope(fmt.Sprintf("Got it! I will remember you as %s.", name))
}

func (s *assistantService) handleRecallName(prof *entity.UserProfile) assistant.Envelope {
	if prof.Name == nil || *prof.Name == "" {
		return assistant.TextEnvelope("I don't currently have your name stored. You can tell me by saying, 'My name is [your name]'.")
	}
	return assistant.TextEnvelope(fmt.Sprintf("Your name is %s.", strings.ReplaceAll(*prof.Name, "*", "")))
}

func defaultTimezone() *time.Location {
	name := os.Getenv("TIME_DEFAULT_TZ")
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *assistantService) handleLocalTime() assistant.Envelope {
	now := s.now().In(defaultTimezone())
	return assistant.TextEnvelope(fmt.Sprintf("The current time is %s.", now.Format("03:04 PM MST")))
}

// timezoneAliases maps the locations people actually say to IANA names.
// Anything else falls through to a substring scan or the LLM.
var timezoneAliases = []struct {
	keywords []string
	tz       string
}{
	{[]string{"thailand", "bangkok"}, "Asia/Bangkok"},
	{[]string{"london", "uk"}, "Europe/London"},
	{[]string{"tokyo", "japan"}, "Asia/Tokyo"},
	{[]string{"new york", "nyc"}, "America/New_York"},
	{[]string{"dubai", "uae"}, "Asia/Dubai"},
	{[]string{"paris", "france"}, "Europe/Paris"},
	{[]string{"india", "mumbai", "delhi"}, "Asia/Kolkata"},
}

func mapLocationToTimezone(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	for _, alias := range timezoneAliases {
		for _, kw := range alias.keywords {
			if strings.Contains(location, kw) {
				return alias.tz
			}
		}
	}
	return ""
}

func (s *assistantService) handleTimeInLocation(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, location string) assistant.Envelope {
	tzName := mapLocationToTimezone(location)
	if tzName != "" {
		if loc, err := time.LoadLocation(tzName); err == nil {
			locationTime := s.now().In(loc).Format("03:04 PM")
			return assistant.TextEnvelope(fmt.Sprintf("The time in %s is %s.", utils.Title(location), locationTime))
		}
	}

	// Unknown place: hand it to the knowledge collaborator instead of
	// refusing.
	return s.generalReply(ctx, session, prof, fmt.Sprintf("what is the current time in %s", location))
}

func (s *assistantService) handleWeather(ctx context.Context, session *entity.SessionContext, city string) assistant.Envelope {
	city = strings.TrimSpace(city)
	if city == "" {
		return assistant.TextEnvelope("Which city would you like the weather for?")
	}
	if s.weather == nil {
		return assistant.TextEnvelope("Sorry, the weather service isn't available right now.")
	}

	session.Topic = entity.TopicWeather

	cacheKey := "weather:" + strings.ToLower(city)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return assistant.TextEnvelope(cached)
		} else if err != nil && err != redis.Nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Weather cache lookup failed")
		}
	}

	report, err := s.weather.Current(ctx, city)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"city":  city,
			"error": err.Error(),
		}).Error("Weather lookup failed")
		return assistant.TextEnvelope(fmt.Sprintf("Sorry, I couldn't find the weather for %s right now.", utils.Title(city)))
	}

	answer := fmt.Sprintf(
		"The weather in %s is currently %s, with a temperature of %d degrees Celsius.",
		utils.Title(city), report.Description, report.TempC,
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, answer, weatherCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to cache weather reply")
		}
	}

	return assistant.TextEnvelope(answer)
}

func (s *assistantService) handleNews(ctx context.Context, topic string) assistant.Envelope {
	if s.news == nil {
		return assistant.TextEnvelope("Sorry, the news service isn't available right now.")
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "technology"
	}

	headlines, err := s.news.TopHeadlines(ctx, topic)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"topic": topic,
			"error": err.Error(),
		}).Error("News lookup failed")
		return assistant.TextEnvelope("I'm having trouble connecting to the news service right now.")
	}
	if len(headlines) == 0 {
		return assistant.TextEnvelope(fmt.Sprintf("I couldn't find any news articles for '%s'.", topic))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the top headlines for '%s':", topic)
	for i, h := range headlines {
		fmt.Fprintf(&sb, " %d. %s.", i+1, h)
	}
	return assistant.TextEnvelope(sb.String())
}

func (s *assistantService) handleApod(ctx context.Context) assistant.Envelope {
	if s.apod == nil {
		return assistant.TextEnvelope("Sorry, I can't reach the astronomy picture service right now.")
	}

	cacheKey := "apod:" + s.now().Format("2006-01-02")
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return assistant.TextEnvelope(cached)
		}
	}

	picture, err := s.apod.PictureOfTheDay(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("APOD lookup failed")
		return assistant.TextEnvelope("I'm sorry, I failed to retrieve the NASA picture of the day.")
	}

	answer := fmt.Sprintf("Today's NASA picture is titled '%s'. You can search for it online to see the image.", picture.Title)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, answer, apodCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to cache APOD reply")
		}
	}

	return assistant.TextEnvelope(answer)
}

func (s *assistantService) handleTrivia(ctx context.Context) assistant.Envelope {
	if s.trivia == nil {
		return assistant.TextEnvelope("I'm unable to connect to the trivia database right now.")
	}

	question, err := s.trivia.Question(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Trivia lookup failed")
		return assistant.TextEnvelope("I'm unable to connect to the trivia database right now.")
	}

	return assistant.TextEnvelope(fmt.Sprintf("Here is a trivia question: %s", question))
}

func (s *assistantService) handleHardware(device, state string) assistant.Envelope {
	answer := fmt.Sprintf("Requesting the app to turn **%s** the **%s**.", state, device)
	return assistant.Envelope{
		Type:         assistant.TypeHardwareToggle,
		Device:       device,
		State:        state,
		TextResponse: answer,
	}
}

func (s *assistantService) handleVolume(state string) assistant.Envelope {
	switch state {
	case "up", "down", "max", "min":
	default:
		return assistant.TextEnvelope("I'm not sure how to adjust the volume that way.")
	}

	return assistant.Envelope{
		Type:         assistant.TypeHardwareToggle,
		Device:       "volume",
		State:        state,
		TextResponse: fmt.Sprintf("Requesting the app to adjust the volume to **%s**.", state),
	}
}

func (s *assistantService) handleOpenApp(appName string) assistant.Envelope {
	appName = utils.Title(strings.TrimSpace(appName))
	if appName == "" {
		return assistant.TextEnvelope("Which app would you like me to open?")
	}

	return assistant.Envelope{
		Type:         assistant.TypeOpenMobileApp,
		AppName:      appName,
		TextResponse: fmt.Sprintf("Requesting the app to open **%s**.", appName),
	}
}

func (s *assistantService) handleDirections(destination string) assistant.Envelope {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return assistant.TextEnvelope("Where would you like to go? Tell me a destination or a place, like 'nearest coffee shop'.")
	}

	return assistant.Envelope{
		Type:         assistant.TypeMapsSearch,
		Query:        destination,
		TextResponse: fmt.Sprintf("Opening Google Maps now to search for **%s**.", utils.Title(destination)),
	}
}
