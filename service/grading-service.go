package service

import (
	"carwash/app_error"
	"carwash/payroll"
	"carwash/repository"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrInvalidWeight = app_error.New(400, "weight_percent must be between 0 and 100")
	ErrInvalidScore  = app_error.New(400, "score must be between 1 and 5")
	ErrMissingName   = app_error.New(400, "name is required")
)

type GradingService struct {
	gradingRepository *repository.GradingRepository
}

func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{
		gradingRepository: repository.NewGradingRepository(db),
	}
}

func (s *GradingService) GetParameters() ([]*repository.GradingParameter, error) {
	return s.gradingRepository.GetParameters()
}

func (s *GradingService) GetEstimations() ([]*repository.Estimation, error) {
	return s.gradingRepository.GetEstimations()
}

// GetGradingData loads parameters and estimations concurrently.
func (s *GradingService) GetGradingData() ([]*repository.GradingParameter, []*repository.Estimation, error) {
	var parameters []*repository.GradingParameter
	var estimations []*repository.Estimation
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		parameters, err = s.gradingRepository.GetParameters()
		return err
	})
	g.Go(func() (err error) {
		estimations, err = s.gradingRepository.GetEstimations()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return parameters, estimations, nil
}

func (s *GradingService) SaveParameter(parameter *repository.GradingParameter) (*repository.GradingParameter, error) {
	if err := validateParameter(parameter); err != nil {
		return nil, err
	}
	return s.gradingRepository.SaveParameter(parameter)
}

func (s *GradingService) SaveEstimation(estimation *repository.Estimation) (*repository.Estimation, error) {
	if err := validateEstimation(estimation); err != nil {
		return nil, err
	}
	return s.gradingRepository.SaveEstimation(estimation)
}

func validateParameter(parameter *repository.GradingParameter) error {
	if parameter.Name == "" {
		return ErrMissingName
	}
	if parameter.WeightPercent < 0 || parameter.WeightPercent > 100 {
		return ErrInvalidWeight
	}
	return nil
}

func validateEstimation(estimation *repository.Estimation) error {
	if estimation.Name == "" {
		return ErrMissingName
	}
	if estimation.WeightPercent < 0 || estimation.WeightPercent > 100 {
		return ErrInvalidWeight
	}
	if estimation.Score != nil && (*estimation.Score < 1 || *estimation.Score > 5) {
		return ErrInvalidScore
	}
	return nil
}

func ToPayrollEstimation(estimation *repository.Estimation) payroll.Estimation {
	return payroll.Estimation{
		ID:            estimation.ID,
		Name:          estimation.Name,
		WeightPercent: estimation.WeightPercent,
		Score:         estimation.Score,
	}
}
