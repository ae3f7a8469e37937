package notify

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/mykafka"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OrderID   uint      `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier delivers a message to the shop owner.
type Notifier interface {
	NotifyOwner(ctx context.Context, n Notification) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key, eventType string, payload any) error
}

// KafkaNotifier hands notifications to the delivery service through the
// owner_notifications topic.
type KafkaNotifier struct {
	Publisher Publisher
}

func (k *KafkaNotifier) NotifyOwner(ctx context.Context, n Notification) error {
	n = stamp(n)
	key := n.ID
	if n.OrderID != 0 {
		key = strconv.FormatUint(uint64(n.OrderID), 10)
	}
	return k.Publisher.PublishEvent(ctx, mykafka.TopicOwnerNotifications, key, "owner.notification", n)
}

// LogNotifier only records the notification. It is used when no broker is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (l *LogNotifier) NotifyOwner(ctx context.Context, n Notification) error {
	n = stamp(n)
	log := l.Log
	if log == nil {
		log = logging.FromContext(ctx)
	}
	log.Info("owner_notification", "id", n.ID, "title", n.Title, "content", n.Content, "order_id", n.OrderID)
	return nil
}

func stamp(n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return n
}
