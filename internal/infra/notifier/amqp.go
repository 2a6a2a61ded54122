package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"app/internal/notification"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	patternDeletionEmail = "sendBatchDeletionEmail"
	patternUpdateEmail   = "sendUpdateEmail"
)

// mail-queueへJSONメッセージを発行するNotifier。
// 通知は低頻度なので発行ごとに接続を張る。
type AMQPNotifier struct {
	url   string
	queue string
}

func NewAMQPNotifier(url, queue string) *AMQPNotifier {
	return &AMQPNotifier{url: url, queue: queue}
}

type envelope struct {
	Pattern string `json:"pattern"`
	Payload any    `json:"payload"`
}

func (n *AMQPNotifier) PublishDeletionReport(ctx context.Context, report notification.DeletionReport) error {
	return n.publish(ctx, patternDeletionEmail, report)
}

func (n *AMQPNotifier) PublishUpdateReport(ctx context.Context, report notification.UpdateReport) error {
	return n.publish(ctx, patternUpdateEmail, report)
}

func (n *AMQPNotifier) publish(ctx context.Context, pattern string, payload any) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", n.queue, err)
	}

	body, err := json.Marshal(envelope{Pattern: pattern, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", pattern, err)
	}
	return nil
}
