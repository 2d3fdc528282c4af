package analytics

import (
	"sort"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// ParetoRow представляет одну тему в Парето-анализе ошибок
type ParetoRow struct {
	EnemyID           string  `json:"enemyId"`
	TopicName         string  `json:"topicName"`
	Errors            int     `json:"errors"`
	Attempted         int     `json:"attempted"`
	ErrorRatePercent  float64 `json:"errorRatePercent"`
	CumulativePercent float64 `json:"cumulativePercent"`
}

// ErrorPareto строит классический анализ 80/20 по ошибкам: темы сортируются
// по убыванию числа ошибок, накопленный процент по построению доходит до 100.
// Темы без единой ошибки в отчет не попадают; пустой журнал дает пустой отчет.
func ErrorPareto(results []entity.QuizResult, enemies []entity.Enemy) []ParetoRow {
	names := make(map[string]string, len(enemies))
	for _, e := range enemies {
		names[e.ID] = e.Name
	}

	type totals struct {
		errors    int
		attempted int
	}
	byEnemy := make(map[string]*totals)
	for _, r := range results {
		t, ok := byEnemy[r.EnemyID]
		if !ok {
			t = &totals{}
			byEnemy[r.EnemyID] = t
		}
		t.errors += r.TotalQuestions - r.CorrectAnswers
		t.attempted += r.TotalQuestions
	}

	rows := make([]ParetoRow, 0, len(byEnemy))
	totalErrors := 0
	for enemyID, t := range byEnemy {
		if t.errors == 0 {
			continue
		}
		row := ParetoRow{
			EnemyID:   enemyID,
			TopicName: names[enemyID],
			Errors:    t.errors,
			Attempted: t.attempted,
		}
		if t.attempted > 0 {
			row.ErrorRatePercent = 100 * float64(t.errors) / float64(t.attempted)
		}
		rows = append(rows, row)
		totalErrors += t.errors
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Errors != rows[j].Errors {
			return rows[i].Errors > rows[j].Errors
		}
		// Детерминированный порядок при равном числе ошибок
		return rows[i].EnemyID < rows[j].EnemyID
	})

	cumulative := 0
	for i := range rows {
		cumulative += rows[i].Errors
		rows[i].CumulativePercent = 100 * float64(cumulative) / float64(totalErrors)
	}
	return rows
}
