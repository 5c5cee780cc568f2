package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/payasyougo/payasyougo.go/db/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode an event we
// reuse buffers from this buffer pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type Client interface {
	PublishAuditEvent(ctx context.Context, entry *models.AuditLog) error
	// Close will close all connections to rabbitmq
	Close() error
}

// AuditEvent is the wire shape of a published audit log entry. The
// event id is assigned at publish time so consumers can deduplicate.
type AuditEvent struct {
	EventID    string    `json:"event_id"`
	UserID     *int64    `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ip_address,omitempty"`
}

type DefaultClient struct {
	conn           *amqp.Connection
	publishChannel *amqp.Channel

	logger *lecho.Logger

	auditExchange string
}

type ClientOption = func(client *DefaultClient)

func WithAuditExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.auditExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// Dial sets up a connection to rabbitmq with a channel that is ready to publish
func Dial(uri string, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
		auditExchange: "payasyougo_audit",
	}
	for _, opt := range options {
		opt(client)
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	client.publishChannel = ch

	err = ch.ExchangeDeclare(
		client.auditExchange,
		// topic exchanges allow routing by entity type
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchanges accept direct publishing
		false,
		// Nowait: wait for a server response to check whether the
		// exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (client *DefaultClient) PublishAuditEvent(ctx context.Context, entry *models.AuditLog) error {
	event := AuditEvent{
		EventID:    uuid.NewString(),
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Timestamp:  entry.Timestamp,
		IPAddress:  entry.IPAddress,
	}

	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	if err := json.NewEncoder(payload).Encode(event); err != nil {
		return err
	}

	routingKey := entry.EntityType + "." + entry.Action
	return client.publishChannel.PublishWithContext(ctx,
		client.auditExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
}

func (client *DefaultClient) Close() error {
	if err := client.publishChannel.Close(); err != nil {
		client.logger.Errorf("Failed to close publish channel: %v", err)
	}
	return client.conn.Close()
}
