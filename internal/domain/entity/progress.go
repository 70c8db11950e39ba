package entity

import "math"

// AggregateProgress returns the rounded mean of the key results' clamped progress.
// An objective without key results has progress 0.
func AggregateProgress(keyResults []*KeyResult) int {
	if len(keyResults) == 0 {
		return 0
	}
	var sum float64
	for _, kr := range keyResults {
		sum += kr.ProgressPercentage()
	}
	return roundPercent(sum / float64(len(keyResults)))
}

// Percentage returns part/total*100 rounded, or 0 when total is 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundPercent(float64(part) / float64(total) * 100)
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
