package service

import (
	"carwash/app_error"
	"carwash/payroll"
	"carwash/repository"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(value int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(value))
}

func gradingFixture() ([]*repository.GradingParameter, []*repository.Estimation) {
	parameters := []*repository.GradingParameter{
		{ID: 1, Name: "punctuality", WeightPercent: 50},
		{ID: 2, Name: "cleanliness", WeightPercent: 50},
	}
	estimations := []*repository.Estimation{
		{ID: 1, Name: "no_issues", WeightPercent: 100, Score: intPtr(5)},
		{ID: 3, Name: "minor_issue", WeightPercent: 70, Score: intPtr(4)},
	}
	return parameters, estimations
}

func shiftFixture() *repository.ShiftReport {
	return &repository.ShiftReport{
		ID:          11,
		WorkerID:    4,
		WorkerName:  "A. Washer",
		PosID:       2,
		ShiftDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		DailySalary: amount(1000),
		BonusPayout: amount(2000),
	}
}

func TestSummarizeComputesPayout(t *testing.T) {
	parameters, estimations := gradingFixture()
	shift := shiftFixture()
	shift.Grades = []*repository.ShiftGrade{
		{ShiftReportID: 11, ParameterID: 1, EstimationID: intPtr(1)},
		{ShiftReportID: 11, ParameterID: 2, EstimationID: intPtr(3)},
	}

	summary := Summarize(shift, parameters, estimations)
	require.NotNil(t, summary.Grading)
	assert.Len(t, summary.Grading.Parameters, 2)
	require.NotNil(t, summary.AverageScore)
	assert.Equal(t, 4.5, *summary.AverageScore)
	assert.Equal(t, payroll.PayoutComputed, summary.Payout.Status)
	// 50 + 35 = 85 percent of 2000
	assert.True(t, decimal.NewFromInt(85).Equal(summary.Payout.TotalPercentage))
	assert.True(t, decimal.NewFromInt(2700).Equal(summary.Payout.DailyShiftPayout))
}

func TestSummarizeUngradedShift(t *testing.T) {
	parameters, estimations := gradingFixture()
	summary := Summarize(shiftFixture(), parameters, estimations)

	assert.Nil(t, summary.AverageScore)
	assert.Equal(t, payroll.PayoutComputed, summary.Payout.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.Payout.DailyShiftPayout))
	for _, parameter := range summary.Grading.Parameters {
		assert.Nil(t, parameter.EstimationID)
	}
}

func TestSummarizeWithoutParametersFallsBack(t *testing.T) {
	summary := Summarize(shiftFixture(), nil, nil)
	assert.Nil(t, summary.Grading)
	assert.Equal(t, payroll.PayoutFallback, summary.Payout.Status)
	assert.Equal(t, payroll.ReasonMissingGrading, summary.Payout.Reason)
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.Payout.DailyShiftPayout))
}

func TestValidateGrades(t *testing.T) {
	parameters, estimations := gradingFixture()

	assert.NoError(t, validateGrades([]GradeInput{{ParameterID: 1, EstimationID: intPtr(1)}, {ParameterID: 2}}, parameters, estimations))

	err := validateGrades([]GradeInput{{ParameterID: 9}}, parameters, estimations)
	assert.ErrorIs(t, err, ErrInvalidGrade)
	assert.Equal(t, 400, app_error.Status(err, 500))

	err = validateGrades([]GradeInput{{ParameterID: 1, EstimationID: intPtr(2)}}, parameters, estimations)
	assert.ErrorIs(t, err, ErrInvalidGrade)
	assert.Contains(t, err.Error(), "unknown estimation 2")

	err = validateGrades([]GradeInput{{ParameterID: 1}, {ParameterID: 1}}, parameters, estimations)
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaShiftPublisher(t *testing.T) {
	parameters, estimations := gradingFixture()
	summary := Summarize(shiftFixture(), parameters, estimations)
	writer := &recordingWriter{}
	publisher := &KafkaShiftPublisher{writer: writer}

	require.NoError(t, publisher.PublishShiftGraded(context.Background(), summary))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "11", string(writer.messages[0].Key))

	var event ShiftGradedEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &event))
	assert.Equal(t, ShiftGradedEventType, event.Type)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, 11, event.ShiftID)
	assert.Equal(t, "2026-06-01", event.ShiftDate)
	assert.Equal(t, "computed", event.PayoutStatus)
	assert.True(t, decimal.NewFromInt(1000).Equal(event.DailyShiftPayout))

	writer.err = errors.New("broker down")
	assert.Error(t, publisher.PublishShiftGraded(context.Background(), summary))
}

type fakePublisher struct {
	published []*ShiftSummary
	err       error
}

func (p *fakePublisher) PublishShiftGraded(_ context.Context, summary *ShiftSummary) error {
	p.published = append(p.published, summary)
	return p.err
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func TestAnnounce(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	notifier := &fakeNotifier{}
	s := NewShiftService(nil, publisher, notifier)
	received := make([]*ShiftSummary, 0)
	s.OnGraded(func(summary *ShiftSummary) {
		received = append(received, summary)
	})

	parameters, estimations := gradingFixture()
	computed := Summarize(shiftFixture(), parameters, estimations)
	s.announce(context.Background(), computed)
	assert.Len(t, publisher.published, 1)
	assert.Empty(t, notifier.messages)
	assert.Equal(t, []*ShiftSummary{computed}, received)

	shift := shiftFixture()
	shift.BonusPayout = decimal.NullDecimal{}
	fallback := Summarize(shift, parameters, estimations)
	s.announce(context.Background(), fallback)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Shift 11 of A. Washer at POS 2 on 2026-06-01 was paid the base salary 1000 only (missing_bonus_payout)", notifier.messages[0])
	assert.Len(t, received, 2)
}

func TestNewShiftServiceDefaults(t *testing.T) {
	s := NewShiftService(nil, nil, nil)
	assert.NoError(t, s.publisher.PublishShiftGraded(context.Background(), nil))
	assert.NoError(t, s.notifier.Notify("ignored"))
}
