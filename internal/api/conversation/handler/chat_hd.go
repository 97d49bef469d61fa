package conversationHandler

import (
	"ReservaGolang/internal/api/conversation"
	contextPkg "ReservaGolang/pkg/context"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

type chatFrame struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

// handleChatWebSocket runs a live conversation over one socket. Each frame
// is a full turn, the reply frame carries the session ID the client must
// echo on subsequent frames.
func (h *ConversationHandler) handleChatWebSocket(c *websocket.Conn) {
	h.log.Info("Chat WebSocket client connected")
	defer h.log.Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 5 * time.Minute

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		var frame chatFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Chat WebSocket error: %v", err)
			} else {
				h.log.Info("Chat WebSocket connection closed")
			}
			break
		}

		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), "websocket"), 15*time.Second)
		response, err := h.conversationService.ProcessMessage(ctx, conversation.MessageRequest{
			SessionID: frame.SessionID,
			Text:      frame.Text,
		})
		cancel()

		if err != nil {
			if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(response); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
