package controller

import (
	"carwash/config"
	"carwash/metrics"
	"carwash/service"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// dashboards are served from other origins
		return true
	},
}

// ShiftHub fans recalculated shift summaries out to the websocket clients watching that shift.
type ShiftHub struct {
	mu          sync.Mutex
	connections map[int]map[*websocket.Conn]bool
	logger      *zap.Logger
}

func NewShiftHub() *ShiftHub {
	return &ShiftHub{
		connections: make(map[int]map[*websocket.Conn]bool),
		logger:      config.Logger(),
	}
}

func (h *ShiftHub) Subscribers(shiftId int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections[shiftId])
}

// Serve registers conn for updates of the shift and blocks until the client goes away.
// When snapshot is set its result is the first message conn receives.
func (h *ShiftHub) Serve(conn *websocket.Conn, shiftId int, snapshot func() (*service.ShiftSummary, error)) {
	if !h.register(conn, shiftId, snapshot) {
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			h.remove(shiftId, conn)
			h.mu.Unlock()
			return
		}
	}
}

// register holds h.mu until the snapshot is written, so broadcasts for the shift
// reach conn only after it.
func (h *ShiftHub) register(conn *websocket.Conn, shiftId int, snapshot func() (*service.ShiftSummary, error)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[shiftId]; !ok {
		h.connections[shiftId] = make(map[*websocket.Conn]bool)
	}
	h.connections[shiftId][conn] = true
	metrics.ShiftSubscribers.Inc()
	if snapshot == nil {
		return true
	}

	summary, err := snapshot()
	if err == nil {
		var serialized []byte
		serialized, err = json.Marshal(toShiftResponse(summary))
		if err == nil {
			err = write(conn, serialized)
		}
	}
	if err != nil {
		h.logger.Debug("could not send shift snapshot", zap.Int("shift_id", shiftId), zap.Error(err))
		h.remove(shiftId, conn)
		return false
	}
	return true
}

func write(conn *websocket.Conn, message []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, message)
}

// remove expects h.mu to be held.
func (h *ShiftHub) remove(shiftId int, conn *websocket.Conn) {
	if !h.connections[shiftId][conn] {
		return
	}
	delete(h.connections[shiftId], conn)
	if len(h.connections[shiftId]) == 0 {
		delete(h.connections, shiftId)
	}
	metrics.ShiftSubscribers.Dec()
	conn.Close()
}

func (h *ShiftHub) Broadcast(summary *service.ShiftSummary) {
	serialized, err := json.Marshal(toShiftResponse(summary))
	if err != nil {
		h.logger.Error("failed to serialize shift", zap.Int("shift_id", summary.Shift.ID), zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections[summary.Shift.ID] {
		if err := write(conn, serialized); err != nil {
			h.logger.Debug("dropping shift subscriber", zap.Int("shift_id", summary.Shift.ID), zap.Error(err))
			h.remove(summary.Shift.ID, conn)
		}
	}
}
