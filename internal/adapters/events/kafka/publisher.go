package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/ogurasousui/simple-orgchart/internal/platform/config"
	"github.com/rs/zerolog"
)

const eventKindEmployeeAdded = "employee-added"

// ErrNilEmployee はイベントに社員が含まれていない場合のエラーです。
var ErrNilEmployee = errors.New("kafka: employee added event without employee")

// EmployeeAddedPayload は Kafka に送信するメッセージ本文です。
type EmployeeAddedPayload struct {
	EmployeeID string    `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	ManagerID  string    `json:"manager_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EmployeeAddedPublisher は EmployeeAddedEvent を Kafka トピックへ転送します。
type EmployeeAddedPublisher struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	now    func() time.Time
	log    zerolog.Logger
}

// NewEmployeeAddedPublisher は EmployeeAddedPublisher を生成します。
func NewEmployeeAddedPublisher(sp sarama.SyncProducer, topic, source string, log zerolog.Logger) *EmployeeAddedPublisher {
	return &EmployeeAddedPublisher{
		sp:     sp,
		topic:  topic,
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With().Str("component", "EmployeeAddedPublisher").Logger(),
	}
}

// NewSyncProducer は kafka 設定から冪等な SyncProducer を生成します。
func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.ClientID = cfg.ClientID
	sCfg.Version = sarama.V3_3_2_0
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer(cfg.Brokers, sCfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: create sync producer: %w", err)
	}
	return sp, nil
}

// Publish は EmployeeAddedEvent の購読ハンドラです。キーには社員 ID を使います。
func (p *EmployeeAddedPublisher) Publish(_ context.Context, ev orgchart.EmployeeAddedEvent) error {
	if p == nil || p.sp == nil {
		return errors.New("kafka: sync producer is not initialized")
	}
	if ev.Employee == nil {
		return ErrNilEmployee
	}

	payload := EmployeeAddedPayload{
		EmployeeID: ev.Employee.ID,
		FirstName:  ev.Employee.FirstName,
		LastName:   ev.Employee.LastName,
		Email:      ev.Employee.Email,
		ManagerID:  ev.Employee.ManagerID(),
		OccurredAt: p.now(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: marshal employee added payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(payload.EmployeeID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-kind"), Value: []byte(eventKindEmployeeAdded)},
			{Key: []byte("source"), Value: []byte(p.source)},
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", p.topic).Str("employee_id", payload.EmployeeID).Msg("failed to send employee added event")
		return fmt.Errorf("kafka: send employee added event: %w", err)
	}

	p.log.Info().
		Str("topic", p.topic).
		Str("employee_id", payload.EmployeeID).
		Int32("partition", part).
		Int64("offset", off).
		Msg("employee added event sent")
	return nil
}

// Close は内部の SyncProducer を閉じます。
func (p *EmployeeAddedPublisher) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}
