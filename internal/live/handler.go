package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Path is where the live feed is mounted.
const Path = "/api/scores/live"

const (
	subscriberBuffer = 64
	writeTimeout     = 5 * time.Second
)

// Handler upgrades to a WebSocket and streams Updates as JSON text frames until the
// client goes away.
func Handler(hub *Hub, logger *zap.Logger) http.Handler {
	upgrader := websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Debug("live upgrade failed", zap.Error(err))

			return
		}
		defer conn.Close()

		id, updates := hub.Subscribe(subscriberBuffer)
		defer hub.Unsubscribe(id)

		gone := make(chan struct{})

		go func() {
			defer close(gone)

			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				return
			case <-r.Context().Done():
				return
			case u, ok := <-updates:
				if !ok {
					return
				}

				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

				if err := conn.WriteJSON(u); err != nil {
					return
				}
			}
		}
	})
}
