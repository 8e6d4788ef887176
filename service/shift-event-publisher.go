package service

import (
	"carwash/metrics"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const ShiftGradedEventType = "shift.graded"

type ShiftGradedEvent struct {
	EventID          string          `json:"event_id"`
	Type             string          `json:"type"`
	ShiftID          int             `json:"shift_id"`
	WorkerID         int             `json:"worker_id"`
	PosID            int             `json:"pos_id"`
	ShiftDate        string          `json:"shift_date"`
	AverageScore     *float64        `json:"average_score"`
	TotalPercentage  decimal.Decimal `json:"total_percentage"`
	DailyShiftPayout decimal.Decimal `json:"daily_shift_payout"`
	PayoutStatus     string          `json:"payout_status"`
	Timestamp        time.Time       `json:"timestamp"`
}

func NewShiftGradedEvent(summary *ShiftSummary) ShiftGradedEvent {
	return ShiftGradedEvent{
		EventID:          uuid.NewString(),
		Type:             ShiftGradedEventType,
		ShiftID:          summary.Shift.ID,
		WorkerID:         summary.Shift.WorkerID,
		PosID:            summary.Shift.PosID,
		ShiftDate:        summary.Shift.ShiftDate.Format(time.DateOnly),
		AverageScore:     summary.AverageScore,
		TotalPercentage:  summary.Payout.TotalPercentage,
		DailyShiftPayout: summary.Payout.DailyShiftPayout,
		PayoutStatus:     string(summary.Payout.Status),
		Timestamp:        time.Now(),
	}
}

type ShiftEventPublisher interface {
	PublishShiftGraded(ctx context.Context, summary *ShiftSummary) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaShiftPublisher keys messages by shift id so all events of a shift stay in one partition.
type KafkaShiftPublisher struct {
	writer messageWriter
}

func NewKafkaShiftPublisher(writer *kafka.Writer) *KafkaShiftPublisher {
	return &KafkaShiftPublisher{writer: writer}
}

func (p *KafkaShiftPublisher) PublishShiftGraded(ctx context.Context, summary *ShiftSummary) error {
	data, err := json.Marshal(NewShiftGradedEvent(summary))
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(summary.Shift.ID)),
		Value: data,
	})
	if err != nil {
		metrics.ShiftEventsPublished.WithLabelValues("error").Inc()
		return err
	}
	metrics.ShiftEventsPublished.WithLabelValues("ok").Inc()
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PublishShiftGraded(context.Context, *ShiftSummary) error {
	return nil
}
