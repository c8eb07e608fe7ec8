package assistantService

import (
	"context"
	"fmt"
	"strings"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) handleSetReminder(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, query string) assistant.Envelope {
	query = strings.TrimSpace(query)
	if query == "" {
		return assistant.TextEnvelope("I need something to remember! What should I add to your list?")
	}

	extracted := s.extractReminder(ctx, query)
	task := strings.TrimSpace(extracted.TaskOnly)

	prof.Reminders = append(prof.Reminders, entity.Reminder{
		Note:      task,
		Timestamp: s.now().Format("2006-01-02 15:04"),
		RemindAt:  extracted.ReminderTime,
	})

	if err := s.profiles.Save(session.UserID, prof); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"error":   err.Error(),
		}).Error("Failed to save profile after adding reminder")
		return assistant.TextEnvelope("Sorry, I couldn't save that note. Please try again.")
	}

	if extracted.ReminderTime != nil {
		return assistant.TextEnvelope(
			fmt.Sprintf("Okay, I've noted: **%s**. I will remind you about that on **%s**.", task, *extracted.ReminderTime),
		)
	}
	return assistant.TextEnvelope(fmt.Sprintf("Okay, I've noted: **%s**.", task))
}

func (s *assistantService) handleRecallNotes(prof *entity.UserProfile) assistant.Envelope {
	if len(prof.Reminders) == 0 {
		return assistant.TextEnvelope("You have no notes or reminders currently stored. Want to add one?")
	}

	lines := make([]string, 0, len(prof.Reminders))
	for i, r := range prof.Reminders {
		added := r.Timestamp
		if fields := strings.Fields(added); len(fields) > 0 {
			added = fields[0]
		}

		suffix := ""
		if r.RemindAt != nil && !strings.EqualFold(*r.RemindAt, "null") {
			suffix = fmt.Sprintf(" (Remind: **%s**)", *r.RemindAt)
		}
		lines = append(lines, fmt.Sprintf("- **%d.** %s%s (Added: %s)", i+1, r.Note, suffix, added))
	}

	answer := fmt.Sprintf(
		"You currently have %d items on your list:\n%s\n\n*(You can say 'Clear my list' to delete them all.)*",
		len(prof.Reminders), strings.Join(lines, "\n"),
	)
	return assistant.TextEnvelope(answer)
}

func (s *assistantService) handleClearNotes(session *entity.SessionContext, prof *entity.UserProfile) assistant.Envelope {
	prof.Reminders = []entity.Reminder{}

	if err := s.profiles.Save(session.UserID, prof); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"error":   err.Error(),
		}).Error("Failed to save profile after clearing notes")
		return assistant.TextEnvelope("Sorry, I couldn't clear your list just now. Please try again.")
	}

	return assistant.TextEnvelope("I have completely cleared your notes and reminders list.")
}

func (s *assistantService) handleCalendarEvent(ctx context.Context, session *entity.SessionContext, query string) assistant.Envelope {
	extracted := s.extractCalendarEvent(ctx, query)

	description := extracted.Description
	if description == "" {
		description = "Set by Senorita Assistant."
	}

	if extracted.Title == "" || extracted.StartTime == "" || extracted.EndTime == "" {
		return assistant.TextEnvelope("I'm sorry, I couldn't figure out the title and timing for that event. Could you be more specific?")
	}

	answer := fmt.Sprintf(
		"I've prepared a calendar event titled **%s** starting at **%s**. The mobile app will now ask you to confirm and add it.",
		extracted.Title, extracted.StartTime,
	)

	return assistant.Envelope{
		Type:         assistant.TypeAddCalendarEvent,
		Title:        extracted.Title,
		Description:  description,
		StartTime:    extracted.StartTime,
		EndTime:      extracted.EndTime,
		AllDay:       extracted.AllDay,
		TextResponse: answer,
	}
}
