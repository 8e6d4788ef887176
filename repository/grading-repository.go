package repository

import (
	"carwash/metrics"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradingParameter struct {
	ID            int     `gorm:"primaryKey" yaml:"id"`
	Name          string  `gorm:"not null;unique" yaml:"name"`
	WeightPercent float64 `gorm:"not null" yaml:"weight_percent"`
}

// Estimation carries its own 1-5 score so the average shown on a shift
// does not depend on estimation ids.
type Estimation struct {
	ID            int     `gorm:"primaryKey" yaml:"id"`
	Name          string  `gorm:"not null;unique" yaml:"name"`
	WeightPercent float64 `gorm:"not null" yaml:"weight_percent"`
	Score         *int    `gorm:"null" yaml:"score"`
}

type GradingRepository struct {
	DB *gorm.DB
}

func NewGradingRepository(db *gorm.DB) *GradingRepository {
	return &GradingRepository{DB: db}
}

func (r *GradingRepository) GetParameters() ([]*GradingParameter, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("GetGradingParameters"))
	defer timer.ObserveDuration()
	parameters := make([]*GradingParameter, 0)
	result := r.DB.Order("id").Find(&parameters)
	if result.Error != nil {
		return nil, result.Error
	}
	return parameters, nil
}

func (r *GradingRepository) GetEstimations() ([]*Estimation, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("GetEstimations"))
	defer timer.ObserveDuration()
	estimations := make([]*Estimation, 0)
	result := r.DB.Order("id").Find(&estimations)
	if result.Error != nil {
		return nil, result.Error
	}
	return estimations, nil
}

func (r *GradingRepository) SaveParameter(parameter *GradingParameter) (*GradingParameter, error) {
	result := r.DB.Save(parameter)
	if result.Error != nil {
		return nil, result.Error
	}
	return parameter, nil
}

func (r *GradingRepository) SaveEstimation(estimation *Estimation) (*Estimation, error) {
	result := r.DB.Save(estimation)
	if result.Error != nil {
		return nil, result.Error
	}
	return estimation, nil
}

// ApplySeed upserts the seeded parameters and estimations by id. The id sequences are
// moved past the seeded ids so rows created later do not collide with them.
func (r *GradingRepository) ApplySeed(seed *GradingSeed) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(seed.Parameters) > 0 {
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&seed.Parameters).Error
			if err != nil {
				return err
			}
			if err := resetSequence(tx, &GradingParameter{}); err != nil {
				return err
			}
		}
		if len(seed.Estimations) > 0 {
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&seed.Estimations).Error
			if err != nil {
				return err
			}
			return resetSequence(tx, &Estimation{})
		}
		return nil
	})
}

func resetSequence(tx *gorm.DB, model interface{}) error {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return err
	}
	table := stmt.Schema.Table
	return tx.Exec(
		fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))`, table, table),
	).Error
}
