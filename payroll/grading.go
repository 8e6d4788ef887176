package payroll

type GradingParameter struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	WeightPercent float64 `json:"weight_percent"`
	EstimationID  *int    `json:"estimation_id"`
}

func (p GradingParameter) Graded() bool {
	return p.EstimationID != nil
}

// Estimation is a selectable quality level for a grading parameter.
// Score is the 1-5 rating shown as the shift's average score.
type Estimation struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	WeightPercent float64 `json:"weight_percent"`
	Score         *int    `json:"score"`
}

type GradingInfo struct {
	Parameters  []GradingParameter `json:"parameters"`
	Estimations []Estimation       `json:"estimations"`
}

func (g GradingInfo) findEstimation(id int) (Estimation, bool) {
	for _, estimation := range g.Estimations {
		if estimation.ID == id {
			return estimation, true
		}
	}
	return Estimation{}, false
}

// Progress returns how many parameters have an estimation selected out of all parameters.
func (g GradingInfo) Progress() (graded int, total int) {
	for _, parameter := range g.Parameters {
		if parameter.Graded() {
			graded++
		}
	}
	return graded, len(g.Parameters)
}

// AverageScore averages the estimation scores of the graded parameters.
// Unknown estimations and estimations without a score count as 0.
// ok is false when nothing is graded yet, the average is undefined then.
func AverageScore(info GradingInfo) (average float64, ok bool) {
	sum, graded := 0, 0
	for _, parameter := range info.Parameters {
		if !parameter.Graded() {
			continue
		}
		graded++
		estimation, found := info.findEstimation(*parameter.EstimationID)
		if found && estimation.Score != nil {
			sum += *estimation.Score
		}
	}
	if graded == 0 {
		return 0, false
	}
	return float64(sum) / float64(graded), true
}
