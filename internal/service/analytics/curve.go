package analytics

import (
	"sort"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// rollingWindow — размер окна скользящей средней кривой обучения
const rollingWindow = 5

// CurvePoint представляет одну попытку на кривой обучения
type CurvePoint struct {
	Date               time.Time `json:"date"`
	AccuracyPercent    float64   `json:"accuracyPercent"`
	CumulativePercent  float64   `json:"cumulativePercent"`
	RollingAvgPercent  float64   `json:"rollingAvgPercent"`
	HasRollingAverage  bool      `json:"hasRollingAverage"`
}

// LearningCurve строит хронологическую кривую обучения: точность каждой
// попытки, накопленную точность и скользящую среднюю по пяти попыткам.
// Скользящая средняя появляется только начиная с пятой попытки.
func LearningCurve(results []entity.QuizResult) []CurvePoint {
	if len(results) == 0 {
		return []CurvePoint{}
	}

	sorted := make([]entity.QuizResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]CurvePoint, 0, len(sorted))
	cumulativeCorrect := 0
	cumulativeTotal := 0

	for i, r := range sorted {
		cumulativeCorrect += r.CorrectAnswers
		cumulativeTotal += r.TotalQuestions

		point := CurvePoint{
			Date:            r.Date,
			AccuracyPercent: r.AccuracyPercent(),
		}
		if cumulativeTotal > 0 {
			point.CumulativePercent = 100 * float64(cumulativeCorrect) / float64(cumulativeTotal)
		}

		if i+1 >= rollingWindow {
			sum := 0.0
			for _, w := range sorted[i+1-rollingWindow : i+1] {
				sum += w.AccuracyPercent()
			}
			point.RollingAvgPercent = sum / rollingWindow
			point.HasRollingAverage = true
		}

		points = append(points, point)
	}
	return points
}
