package service

import (
	"carwash/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateParameter(t *testing.T) {
	assert.NoError(t, validateParameter(&repository.GradingParameter{Name: "cleanliness", WeightPercent: 40}))
	assert.ErrorIs(t, validateParameter(&repository.GradingParameter{WeightPercent: 40}), ErrMissingName)
	assert.ErrorIs(t, validateParameter(&repository.GradingParameter{Name: "x", WeightPercent: 101}), ErrInvalidWeight)
	assert.ErrorIs(t, validateParameter(&repository.GradingParameter{Name: "x", WeightPercent: -1}), ErrInvalidWeight)
}

func TestValidateEstimation(t *testing.T) {
	assert.NoError(t, validateEstimation(&repository.Estimation{Name: "no_issues", WeightPercent: 100, Score: intPtr(5)}))
	assert.NoError(t, validateEstimation(&repository.Estimation{Name: "unscored", WeightPercent: 0}))
	assert.ErrorIs(t, validateEstimation(&repository.Estimation{Name: "x", WeightPercent: 10, Score: intPtr(0)}), ErrInvalidScore)
	assert.ErrorIs(t, validateEstimation(&repository.Estimation{Name: "x", WeightPercent: 10, Score: intPtr(6)}), ErrInvalidScore)
	assert.ErrorIs(t, validateEstimation(&repository.Estimation{Name: "x", WeightPercent: 150}), ErrInvalidWeight)
}
