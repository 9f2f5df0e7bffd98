// Package notify is the console's toast sink. Every user-visible outcome goes through here
// exactly once: it is logged and pushed to connected clients.
package notify

import (
	"time"

	"go.uber.org/zap"

	"go-storefront-admin/internal/ws"
	"go-storefront-admin/pkg/logger"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

type Toast struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Publisher is the push side of the websocket hub.
type Publisher interface {
	Publish(msgType string, v interface{})
}

type Notifier struct {
	pub Publisher
	log *zap.Logger
	now func() time.Time
}

func New(pub Publisher, log *zap.Logger) *Notifier {
	return &Notifier{pub: pub, log: logger.OrNop(log).Named("notify"), now: time.Now}
}

func (n *Notifier) Success(message string) {
	n.log.Info(message)
	n.send(LevelSuccess, message)
}

func (n *Notifier) Error(message string) {
	n.log.Warn(message)
	n.send(LevelError, message)
}

func (n *Notifier) send(level, message string) {
	if n.pub == nil {
		return
	}
	n.pub.Publish(ws.TypeToast, Toast{Level: level, Message: message, At: n.now().UTC()})
}
