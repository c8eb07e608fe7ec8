package assistantService

import (
	"context"
	"fmt"
	"strings"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/pkg/intent"
	"ProjectSenorita/pkg/utils"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) handleSendMessage(ctx context.Context, session *entity.SessionContext, slots intent.Slots) assistant.Envelope {
	message := utils.TrimMessagePunctuation(slots.Message)
	contact := strings.TrimSpace(slots.Contact)

	if message == "" || contact == "" {
		return assistant.TextEnvelope("Please specify both a message and a contact name.")
	}

	platform := strings.ToLower(strings.TrimSpace(slots.Platform))
	if platform == "" {
		platform = "sms"
	}

	// Dictating a message ends whatever conversation was in flight.
	session.ResetHistory()

	answer := fmt.Sprintf("Sending message to %s on %s.", contact, platform)

	// WhatsApp is the one channel the server can deliver on directly;
	// everything else is handed to the mobile client.
	if platform == "whatsapp" && s.whatsapp != nil && s.whatsapp.IsConnected() {
		if err := s.whatsapp.SendMessage(ctx, contact, message); err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("WhatsApp delivery failed")
			answer = fmt.Sprintf("I couldn't deliver the WhatsApp message to %s. The app will try instead.", contact)
		} else {
			answer = fmt.Sprintf("Your WhatsApp message to %s is on its way.", contact)
		}
	}

	return assistant.Envelope{
		Type:         assistant.TypeSendMessage,
		Contact:      contact,
		Message:      message,
		Platform:     platform,
		TextResponse: answer,
	}
}
