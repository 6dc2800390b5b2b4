package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/markusressel/yaw2go/internal/ui"
)

const samplePushInterval = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func registerWebsocketEndpoint(rest *echo.Echo, h *handler) {
	rest.GET("/ws/samples/", h.streamSamples)
}

// streamSamples pushes newly recorded samples to the client as JSON arrays.
// The connection is closed after the samples of a finalized run have been sent.
func (h *handler) streamSamples(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ui.Warning("websocket upgrade error: %v", err)
		return nil
	}
	defer conn.Close()

	// close frames are only processed while reading
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(samplePushInterval)
	defer ticker.Stop()

	next := 0
	for {
		finalized := h.controller.Status().State == controller.StateFinalized.String()

		samples := h.controller.Samples().Since(next)
		if len(samples) > 0 {
			err = conn.WriteJSON(samples)
			if err != nil {
				ui.Debug("websocket write error: %v", err)
				return nil
			}
			next += len(samples)
		}

		if finalized {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finalized"))
			return nil
		}

		select {
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}
