package payroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scores as seeded for the default estimations
func seededEstimations() []Estimation {
	return []Estimation{
		{ID: 1, Name: "no_issues", WeightPercent: 100, Score: intPtr(5)},
		{ID: 2, Name: "major_issue", WeightPercent: 0, Score: intPtr(2)},
		{ID: 3, Name: "minor_issue", WeightPercent: 70, Score: intPtr(4)},
		{ID: 4, Name: "several_minor_issues", WeightPercent: 40, Score: intPtr(3)},
	}
}

func TestAverageScoreUndefinedWhenNothingGraded(t *testing.T) {
	average, ok := AverageScore(GradingInfo{
		Parameters:  []GradingParameter{{ID: 1}, {ID: 2}},
		Estimations: seededEstimations(),
	})
	assert.False(t, ok)
	assert.Zero(t, average)

	_, ok = AverageScore(GradingInfo{})
	assert.False(t, ok)
}

func TestAverageScore(t *testing.T) {
	average, ok := AverageScore(GradingInfo{
		Parameters: []GradingParameter{
			{ID: 1, EstimationID: intPtr(1)},
			{ID: 2, EstimationID: intPtr(3)},
			{ID: 3},
			{ID: 4, EstimationID: intPtr(4)},
		},
		Estimations: seededEstimations(),
	})
	assert.True(t, ok)
	assert.Equal(t, 4.0, average)
}

func TestAverageScoreUnknownEstimationCountsAsZero(t *testing.T) {
	estimations := seededEstimations()
	estimations = append(estimations, Estimation{ID: 9, Name: "unscored"})
	average, ok := AverageScore(GradingInfo{
		Parameters: []GradingParameter{
			{ID: 1, EstimationID: intPtr(1)},
			{ID: 2, EstimationID: intPtr(404)},
			{ID: 3, EstimationID: intPtr(9)},
		},
		Estimations: estimations,
	})
	assert.True(t, ok)
	assert.InDelta(t, 5.0/3.0, average, 1e-9)
	assert.False(t, math.IsNaN(average))
}

func TestProgress(t *testing.T) {
	graded, total := GradingInfo{
		Parameters: []GradingParameter{{ID: 1, EstimationID: intPtr(1)}, {ID: 2}, {ID: 3}},
	}.Progress()
	assert.Equal(t, 1, graded)
	assert.Equal(t, 3, total)
}
