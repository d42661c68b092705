package websocket

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/signals/internal/domain"
	"github.com/kahvecikaan/signals/internal/service"
)

const writeWait = 5 * time.Second

type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	Arena    service.ArenaService
}

func NewHandler(log hclog.Logger, arena service.ArenaService) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		Log:   log,
		Arena: arena,
	}
}

// HandleWebSocket streams the events of one unit until the client goes away
// or the unit is removed.
//
// swagger:route GET /units/{id}/ws units watchUnit
//
// Upgrades to a websocket carrying the unit's events as JSON messages.
//
// Responses:
//
//	101: noContentResponse
//	404: errorResponse
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid unit ID", http.StatusBadRequest)
		return
	}

	// subscribe before upgrading so a missing unit is a plain 404
	sub, err := h.Arena.Watch(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUnitNotFound) {
			http.Error(w, "Unit not found", http.StatusNotFound)
			return
		}
		h.Log.Error("Unable to watch unit", "unit_id", id, "error", err)
		http.Error(w, "Unable to watch unit", http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go h.readPump(conn, done)

	for {
		select {
		case msg, ok := <-sub.C():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the unit left the arena
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "unit removed"))
				return
			}

			if err := conn.WriteJSON(msg); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-done:
			h.Log.Info("WebSocket connection closed by the client", "unit_id", id)
			return
		}
	}
}

func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			break
		}
	}
}
