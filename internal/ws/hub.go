package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"go-storefront-admin/pkg/logger"
)

// Message types pushed to the console.
const (
	TypeToast    = "toast"
	TypeStockRow = "stock_row"
)

const broadcastBuffer = 256

// Sender is one connected client; *websocket.Conn satisfies it.
type Sender interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Hub struct {
	Clients    map[Sender]bool
	Register   chan Sender
	Unregister chan Sender
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[Sender]bool),
		Register:   make(chan Sender),
		Unregister: make(chan Sender),
		Broadcast:  make(chan []byte, broadcastBuffer),
		log:        logger.OrNop(log).Named("ws"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			n := len(h.Clients)
			h.mutex.Unlock()
			h.log.Debug("client connected", zap.Int("clients", n))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug("dropping client", zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues v for every client. It never blocks: when the queue is full the message is
// dropped.
func (h *Hub) Publish(msgType string, v interface{}) {
	payload := map[string]interface{}{"type": msgType, "data": v}
	msg, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("encode ws message", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("ws queue full, message dropped", zap.String("type", msgType))
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
