package repository

import (
	"carwash/metrics"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftReport struct {
	ID          int                 `gorm:"primaryKey"`
	WorkerID    int                 `gorm:"not null;index"`
	WorkerName  string              `gorm:"not null"`
	PosID       int                 `gorm:"not null;index"`
	ShiftDate   time.Time           `gorm:"type:date;not null;index"`
	DailySalary decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	BonusPayout decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Grades      []*ShiftGrade       `gorm:"foreignKey:ShiftReportID;constraint:OnDelete:CASCADE"`
}

type ShiftGrade struct {
	ShiftReportID int  `gorm:"primaryKey"`
	ParameterID   int  `gorm:"primaryKey"`
	EstimationID  *int `gorm:"null"`
}

type ShiftFilter struct {
	From  time.Time
	To    time.Time
	PosID *int
}

type ShiftRepository struct {
	DB *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{DB: db}
}

func (r *ShiftRepository) GetShiftById(shiftId int) (*ShiftReport, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("GetShiftById"))
	defer timer.ObserveDuration()
	var shift ShiftReport
	result := r.DB.Preload("Grades").First(&shift, "id = ?", shiftId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &shift, nil
}

func (r *ShiftRepository) GetShifts(filter ShiftFilter) ([]*ShiftReport, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("GetShifts"))
	defer timer.ObserveDuration()
	shifts := make([]*ShiftReport, 0)
	query := r.DB.Preload("Grades").Where("shift_date BETWEEN ? AND ?", filter.From, filter.To)
	if filter.PosID != nil {
		query = query.Where("pos_id = ?", *filter.PosID)
	}
	result := query.Order("shift_date, id").Find(&shifts)
	if result.Error != nil {
		return nil, result.Error
	}
	return shifts, nil
}

func (r *ShiftRepository) SaveShift(shift *ShiftReport) (*ShiftReport, error) {
	result := r.DB.Omit("Grades").Save(shift)
	if result.Error != nil {
		return nil, result.Error
	}
	return shift, nil
}

// SaveGrades upserts the grades of a shift. Grades not mentioned are left as they are.
func (r *ShiftRepository) SaveGrades(grades []*ShiftGrade) error {
	if len(grades) == 0 {
		return nil
	}
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("SaveGrades"))
	defer timer.ObserveDuration()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shift_report_id"}, {Name: "parameter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"estimation_id"}),
	}).Create(&grades).Error
}
