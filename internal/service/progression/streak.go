package progression

import (
	"sort"
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// dayKeyLayout — формат ключа календарного дня (локальные границы суток)
const dayKeyLayout = "2006-01-02"

// DayKey возвращает ключ календарного дня для метки времени
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

// UniqueStudyDays возвращает множество календарных дней с хотя бы одной
// попыткой, дедуплицированных по локальной дате
func UniqueStudyDays(results []entity.QuizResult) map[string]bool {
	days := make(map[string]bool, len(results))
	for _, r := range results {
		days[DayKey(r.Date)] = true
	}
	return days
}

// ConsecutiveStreak считает серию последовательных учебных дней, двигаясь
// назад от today. Если сам today отсутствует в множестве, серия равна 0.
func ConsecutiveStreak(studyDays map[string]bool, today time.Time) int {
	if !studyDays[DayKey(today)] {
		return 0
	}
	streak := 1
	day := today.AddDate(0, 0, -1)
	for studyDays[DayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak возвращает самую длинную серию последовательных учебных
// дней за всю историю
func LongestStreak(results []entity.QuizResult) int {
	days := UniqueStudyDays(results)
	if len(days) == 0 {
		return 0
	}

	// Восстанавливаем даты из ключей и сортируем хронологически
	dates := make([]time.Time, 0, len(days))
	for key := range days {
		d, err := time.ParseInLocation(dayKeyLayout, key, time.Local)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		// Сравнение через AddDate, чтобы переход на летнее время не рвал серию
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

// PerfectDays возвращает календарные дни, в которых агрегат всех попыток
// дня дал 100% точность (по каждой попытке дня в сумме, не по одной).
func PerfectDays(results []entity.QuizResult) map[string]bool {
	type dayTotals struct {
		correct int
		total   int
	}

	totals := make(map[string]*dayTotals)
	for _, r := range results {
		key := DayKey(r.Date)
		t, ok := totals[key]
		if !ok {
			t = &dayTotals{}
			totals[key] = t
		}
		t.correct += r.CorrectAnswers
		t.total += r.TotalQuestions
	}

	perfect := make(map[string]bool)
	for key, t := range totals {
		if t.total > 0 && t.correct == t.total {
			perfect[key] = true
		}
	}
	return perfect
}
