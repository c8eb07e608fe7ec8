package assistantHandler

import (
	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/pkg/log"
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
)

// CommandStream runs the command loop over one websocket connection,
// for voice front ends that keep a live channel open instead of posting
// each utterance.
func (h *AssistantHandler) CommandStream(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var req assistant.CommandRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"error": err.Error(),
				}).Warn("Websocket read failed")
			}
			return
		}

		if err := h.validator.Struct(req); err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		envelope, err := h.assistantService.ProcessCommand(c, req)
		cancel()

		if err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(map[string]interface{}{"response": envelope}); err != nil {
			h.log.WithFields(log.Fields{
				"session_id": req.SessionID,
				"error":      err.Error(),
			}).Warn("Websocket write failed")
			return
		}
	}
}
