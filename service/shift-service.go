package service

import (
	"carwash/app_error"
	"carwash/config"
	"carwash/metrics"
	"carwash/payroll"
	"carwash/report"
	"carwash/repository"
	"carwash/utils"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrInvalidGrade   = app_error.New(400, "invalid grade")
	ErrNegativeAmount = app_error.New(400, "daily salary and bonus payout must not be negative")
	ErrMissingWorker  = app_error.New(400, "worker and point of sale are required")
)

const publishTimeout = 5 * time.Second

type Notifier interface {
	Notify(message string) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) error {
	return nil
}

type GradeInput struct {
	ParameterID  int  `json:"parameter_id" binding:"required"`
	EstimationID *int `json:"estimation_id"`
}

// ShiftSummary is a shift report together with everything derived from its grading.
type ShiftSummary struct {
	Shift        *repository.ShiftReport
	Grading      *payroll.GradingInfo
	AverageScore *float64
	Payout       payroll.Payout
}

type ShiftListener func(summary *ShiftSummary)

type ShiftService struct {
	shiftRepository *repository.ShiftRepository
	gradingService  *GradingService
	publisher       ShiftEventPublisher
	notifier        Notifier
	logger          *zap.Logger
	mu              sync.RWMutex
	listeners       []ShiftListener
}

func NewShiftService(db *gorm.DB, publisher ShiftEventPublisher, notifier Notifier) *ShiftService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ShiftService{
		shiftRepository: repository.NewShiftRepository(db),
		gradingService:  NewGradingService(db),
		publisher:       publisher,
		notifier:        notifier,
		logger:          config.Logger(),
	}
}

// OnGraded registers a listener that is called after every successful grading.
func (s *ShiftService) OnGraded(listener ShiftListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *ShiftService) GetShiftReport(shiftId int) (*ShiftSummary, error) {
	var shift *repository.ShiftReport
	var parameters []*repository.GradingParameter
	var estimations []*repository.Estimation
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		shift, err = s.shiftRepository.GetShiftById(shiftId)
		return err
	})
	g.Go(func() (err error) {
		parameters, estimations, err = s.gradingService.GetGradingData()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Summarize(shift, parameters, estimations), nil
}

func (s *ShiftService) ListShiftReports(filter repository.ShiftFilter) ([]*ShiftSummary, error) {
	shifts, err := s.shiftRepository.GetShifts(filter)
	if err != nil {
		return nil, err
	}
	parameters, estimations, err := s.gradingService.GetGradingData()
	if err != nil {
		return nil, err
	}
	return utils.Map(shifts, func(shift *repository.ShiftReport) *ShiftSummary {
		return Summarize(shift, parameters, estimations)
	}), nil
}

func (s *ShiftService) SaveShift(shift *repository.ShiftReport) (*repository.ShiftReport, error) {
	if shift.WorkerID == 0 || shift.PosID == 0 {
		return nil, ErrMissingWorker
	}
	if shift.DailySalary.Valid && shift.DailySalary.Decimal.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if shift.BonusPayout.Valid && shift.BonusPayout.Decimal.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if shift.ID != 0 {
		if _, err := s.shiftRepository.GetShiftById(shift.ID); err != nil {
			return nil, err
		}
	}
	return s.shiftRepository.SaveShift(shift)
}

// GradeShift stores the selected estimations of a shift and recalculates its payout.
// Listeners, the event stream and (for fallback payouts) the ops channel are informed afterwards;
// failures there are logged and do not fail the grading.
func (s *ShiftService) GradeShift(ctx context.Context, shiftId int, grades []GradeInput) (*ShiftSummary, error) {
	shift, err := s.shiftRepository.GetShiftById(shiftId)
	if err != nil {
		return nil, err
	}
	parameters, estimations, err := s.gradingService.GetGradingData()
	if err != nil {
		return nil, err
	}
	if err := validateGrades(grades, parameters, estimations); err != nil {
		return nil, err
	}
	err = s.shiftRepository.SaveGrades(utils.Map(grades, func(grade GradeInput) *repository.ShiftGrade {
		return &repository.ShiftGrade{ShiftReportID: shift.ID, ParameterID: grade.ParameterID, EstimationID: grade.EstimationID}
	}))
	if err != nil {
		return nil, err
	}
	shift, err = s.shiftRepository.GetShiftById(shiftId)
	if err != nil {
		return nil, err
	}
	summary := Summarize(shift, parameters, estimations)
	metrics.PayoutsCalculated.WithLabelValues(string(summary.Payout.Status)).Inc()
	s.announce(ctx, summary)
	return summary, nil
}

func (s *ShiftService) announce(ctx context.Context, summary *ShiftSummary) {
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.PublishShiftGraded(publishCtx, summary); err != nil {
		s.logger.Error("failed to publish shift event", zap.Int("shift_id", summary.Shift.ID), zap.Error(err))
	}
	if summary.Payout.Status == payroll.PayoutFallback {
		s.logger.Warn("shift payout fell back to daily salary",
			zap.Int("shift_id", summary.Shift.ID),
			zap.String("reason", string(summary.Payout.Reason)),
		)
		if err := s.notifier.Notify(fallbackMessage(summary)); err != nil {
			s.logger.Error("failed to send notification", zap.Error(err))
		}
	}
	s.mu.RLock()
	listeners := append([]ShiftListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, listener := range listeners {
		listener(summary)
	}
}

func (s *ShiftService) ExportShiftReports(w io.Writer, filter repository.ShiftFilter) error {
	summaries, err := s.ListShiftReports(filter)
	if err != nil {
		return err
	}
	return report.WriteShiftReport(w, utils.Map(summaries, toShiftRow))
}

func toShiftRow(summary *ShiftSummary) report.ShiftRow {
	return report.ShiftRow{
		ShiftID:         summary.Shift.ID,
		ShiftDate:       summary.Shift.ShiftDate,
		WorkerName:      summary.Shift.WorkerName,
		PosID:           summary.Shift.PosID,
		AverageScore:    summary.AverageScore,
		TotalPercentage: summary.Payout.TotalPercentage,
		Payout:          summary.Payout.DailyShiftPayout,
		Status:          string(summary.Payout.Status),
	}
}

func fallbackMessage(summary *ShiftSummary) string {
	return fmt.Sprintf("Shift %d of %s at POS %d on %s was paid the base salary %s only (%s)",
		summary.Shift.ID,
		summary.Shift.WorkerName,
		summary.Shift.PosID,
		summary.Shift.ShiftDate.Format(time.DateOnly),
		summary.Payout.DailyShiftPayout.String(),
		summary.Payout.Reason,
	)
}

// Summarize combines a shift with the configured grading parameters. Every configured
// parameter is listed, ungraded ones without an estimation. Without any configured
// parameter the shift has no grading information at all.
func Summarize(shift *repository.ShiftReport, parameters []*repository.GradingParameter, estimations []*repository.Estimation) *ShiftSummary {
	var grading *payroll.GradingInfo
	if len(parameters) > 0 {
		selected := make(map[int]*int, len(shift.Grades))
		for _, grade := range shift.Grades {
			selected[grade.ParameterID] = grade.EstimationID
		}
		grading = &payroll.GradingInfo{
			Parameters: utils.Map(parameters, func(parameter *repository.GradingParameter) payroll.GradingParameter {
				return payroll.GradingParameter{
					ID:            parameter.ID,
					Name:          parameter.Name,
					WeightPercent: parameter.WeightPercent,
					EstimationID:  selected[parameter.ID],
				}
			}),
			Estimations: utils.Map(estimations, ToPayrollEstimation),
		}
	}

	summary := &ShiftSummary{
		Shift:   shift,
		Grading: grading,
		Payout: payroll.CalculatePayout(payroll.PayoutInput{
			DailySalary: shift.DailySalary,
			BonusPayout: shift.BonusPayout,
			Grading:     grading,
		}),
	}
	if grading != nil {
		if average, ok := payroll.AverageScore(*grading); ok {
			summary.AverageScore = &average
		}
	}
	return summary
}

func validateGrades(grades []GradeInput, parameters []*repository.GradingParameter, estimations []*repository.Estimation) error {
	parameterIds := make(map[int]bool, len(parameters))
	for _, parameter := range parameters {
		parameterIds[parameter.ID] = true
	}
	estimationIds := make(map[int]bool, len(estimations))
	for _, estimation := range estimations {
		estimationIds[estimation.ID] = true
	}
	seen := make(map[int]bool, len(grades))
	for _, grade := range grades {
		if !parameterIds[grade.ParameterID] {
			return fmt.Errorf("%w: unknown grading parameter %d", ErrInvalidGrade, grade.ParameterID)
		}
		if seen[grade.ParameterID] {
			return fmt.Errorf("%w: grading parameter %d given twice", ErrInvalidGrade, grade.ParameterID)
		}
		seen[grade.ParameterID] = true
		if grade.EstimationID != nil && !estimationIds[*grade.EstimationID] {
			return fmt.Errorf("%w: unknown estimation %d", ErrInvalidGrade, *grade.EstimationID)
		}
	}
	return nil
}
