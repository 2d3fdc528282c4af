package analytics

import (
	"sort"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// confidenceMidpoint — граница между «уверенными» и «неуверенными» ответами
const confidenceMidpoint = 50.0

// QuadrantPoint представляет один ответ на стратегической плоскости
// (уверенность, время)
type QuadrantPoint struct {
	Confidence  float64 `json:"confidence"` // certainty=100, doubt=50, unknown=0
	TimeSeconds float64 `json:"timeSeconds"`
	Correct     bool    `json:"correct"`
}

// QuadrantReport раскладывает ответы по четырем квадрантам, разделенным
// медианой времени и серединой шкалы уверенности
type QuadrantReport struct {
	MedianTimeSeconds  float64         `json:"medianTimeSeconds"`
	ConfidenceMidpoint float64         `json:"confidenceMidpoint"`
	ConfidentFast      []QuadrantPoint `json:"confidentFast"` // высокая уверенность, быстро
	ConfidentSlow      []QuadrantPoint `json:"confidentSlow"` // высокая уверенность, медленно
	UncertainFast      []QuadrantPoint `json:"uncertainFast"` // низкая уверенность, быстро
	UncertainSlow      []QuadrantPoint `json:"uncertainSlow"` // низкая уверенность, медленно
}

// ConfidenceAsNumber переводит тег уверенности в число на шкале [0, 100]
func ConfidenceAsNumber(level entity.ConfidenceLevel) (float64, bool) {
	switch level {
	case entity.ConfidenceCertainty:
		return 100, true
	case entity.ConfidenceDoubt:
		return 50, true
	case entity.ConfidenceUnknown:
		return 0, true
	default:
		return 0, false
	}
}

// StrategyQuadrant строит стратегический квадрант по всем ответам,
// несущим и тег уверенности, и записанное время. Пустой вход дает
// пустой отчет с нулевой медианой.
func StrategyQuadrant(results []entity.QuizResult) QuadrantReport {
	report := QuadrantReport{
		ConfidenceMidpoint: confidenceMidpoint,
		ConfidentFast:      []QuadrantPoint{},
		ConfidentSlow:      []QuadrantPoint{},
		UncertainFast:      []QuadrantPoint{},
		UncertainSlow:      []QuadrantPoint{},
	}

	points := make([]QuadrantPoint, 0)
	for _, r := range results {
		for _, a := range r.Answers {
			confidence, ok := ConfidenceAsNumber(a.Confidence)
			if !ok || a.TimeSpentMs <= 0 {
				continue
			}
			points = append(points, QuadrantPoint{
				Confidence:  confidence,
				TimeSeconds: float64(a.TimeSpentMs) / 1000,
				Correct:     a.Correct,
			})
		}
	}
	if len(points) == 0 {
		return report
	}

	report.MedianTimeSeconds = medianTime(points)

	for _, p := range points {
		confident := p.Confidence > confidenceMidpoint
		fast := p.TimeSeconds <= report.MedianTimeSeconds
		switch {
		case confident && fast:
			report.ConfidentFast = append(report.ConfidentFast, p)
		case confident && !fast:
			report.ConfidentSlow = append(report.ConfidentSlow, p)
		case !confident && fast:
			report.UncertainFast = append(report.UncertainFast, p)
		default:
			report.UncertainSlow = append(report.UncertainSlow, p)
		}
	}
	return report
}

// medianTime возвращает медиану времени ответа в секундах
func medianTime(points []QuadrantPoint) float64 {
	times := make([]float64, len(points))
	for i, p := range points {
		times[i] = p.TimeSeconds
	}
	sort.Float64s(times)

	mid := len(times) / 2
	if len(times)%2 == 1 {
		return times[mid]
	}
	return (times[mid-1] + times[mid]) / 2
}
