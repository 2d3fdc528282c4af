package progression

import (
	"time"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// Доли сложности, предполагаемые для сессии, когда истинная сложность
// вопросов отдельно не отслеживается: 30% easy, 50% medium, 20% hard.
const (
	assumedEasyPercent   = 30
	assumedMediumPercent = 50
	assumedHardPercent   = 20
)

// Engine пересчитывает состояние персонажа из журнала попыток.
//
// Движок ведет двойную бухгалтерию атрибутов: ApplySession применяет
// ограниченные пошаговые дельты за сессию, AttributesFromHistory пересчитывает
// атрибуты с нуля из полной истории. Это две независимые оценки, а не
// оптимизация одна другой; численного совпадения между ними не требуется.
type Engine struct{}

// NewEngine создает движок прогрессии
func NewEngine() *Engine {
	return &Engine{}
}

// CalculateTotalXP возвращает суммарный опыт за всю историю попыток:
// опыт за каждый правильный ответ (сложность из записи ответа, иначе easy),
// плюс опыт за завершение каждого боя, плюс бонусы за высокие результаты,
// плюс эскалирующий опыт за самую длинную серию учебных дней,
// плюс фиксированный бонус за каждую затронутую тему.
// Итог не зависит от порядка записей: серия сортирует дни внутри себя.
func (e *Engine) CalculateTotalXP(results []entity.QuizResult) int {
	total := 0
	topics := make(map[string]bool)

	for _, r := range results {
		total += e.resultAnswerXP(&r)
		total += XPForQuizCompletion()
		total += XPBonusForHighScore(r.CorrectAnswers, r.TotalQuestions)
		if r.EnemyID != "" {
			topics[r.EnemyID] = true
		}
	}

	total += CumulativeStreakXP(LongestStreak(results))
	total += TopicTouchedXP * len(topics)

	return total
}

// resultAnswerXP возвращает опыт за правильные ответы одного боя
func (e *Engine) resultAnswerXP(r *entity.QuizResult) int {
	if len(r.Answers) == 0 {
		// Детализация ответов не сохранена: считаем все правильные ответы easy
		return r.CorrectAnswers * XPForCorrectAnswer(entity.DifficultyEasy)
	}

	xp := 0
	for _, a := range r.Answers {
		if a.Correct {
			xp += XPForCorrectAnswer(entity.ParseDifficulty(string(a.Difficulty)))
		}
	}
	return xp
}

// RefreshLevel пересчитывает уровень, ранг и порог следующего уровня
// персонажа из его текущего опыта
func (e *Engine) RefreshLevel(c *entity.Character) {
	info := LevelForXP(c.XP)
	c.Level = info.Level
	c.RankName = info.RankName
	c.NextLevelXP = info.NextLevelXP
}

// ApplySession применяет к персонажу одну учебную сессию: начисляет опыт,
// продлевает или сбрасывает серию и применяет ограниченные дельты атрибутов.
// Возвращает опыт, начисленный только за эту сессию.
func (e *Engine) ApplySession(c *entity.Character, questionsAnswered, correctAnswers int, timeSpentMs int64, now time.Time) int {
	if questionsAnswered <= 0 {
		return 0
	}
	if correctAnswers < 0 {
		correctAnswers = 0
	}
	if correctAnswers > questionsAnswered {
		correctAnswers = questionsAnswered
	}

	accuracy := float64(correctAnswers) / float64(questionsAnswered)

	// Предполагаемое распределение сложности: 30/50/20
	assumedHard := questionsAnswered * assumedHardPercent / 100
	assumedMedium := questionsAnswered * assumedMediumPercent / 100
	_ = assumedMedium

	correctHard := correctAnswers * assumedHardPercent / 100
	correctMedium := correctAnswers * assumedMediumPercent / 100
	correctEasy := correctAnswers - correctHard - correctMedium

	xp := correctEasy*XPEasy + correctMedium*XPMedium + correctHard*XPHard
	xp += XPForQuizCompletion()
	xp += XPBonusForHighScore(correctAnswers, questionsAnswered)

	// Продление или сброс серии по дате последней учебы
	oldStreak := c.StreakDays
	todayKey := DayKey(now)
	yesterdayKey := DayKey(now.AddDate(0, 0, -1))
	switch {
	case c.LastStudyDate == nil:
		c.StreakDays = 1
	case DayKey(*c.LastStudyDate) == todayKey:
		// Уже учились сегодня: серия не меняется
	case DayKey(*c.LastStudyDate) == yesterdayKey:
		c.StreakDays++
	default:
		c.StreakDays = 1
	}
	streakIncreased := c.StreakDays > oldStreak

	// Ограниченные дельты атрибутов за сессию
	avgMsPerQuestion := timeSpentMs / int64(questionsAnswered)

	strengthDelta := int(5 * accuracy)
	agilityDelta := -1
	if avgMsPerQuestion < 60_000 {
		agilityDelta = 3
	}
	resistanceDelta := 0
	if streakIncreased {
		resistanceDelta = 3
	}
	wisdomDelta := 1
	if assumedHard > 0 {
		wisdomDelta = 2
	}
	honorDelta := 0
	if accuracy > 0.8 {
		honorDelta = 2
	} else if accuracy < 0.5 {
		honorDelta = -2
	}

	c.Attributes.Strength = entity.ClampAttribute(c.Attributes.Strength + strengthDelta)
	c.Attributes.Agility = entity.ClampAttribute(c.Attributes.Agility + agilityDelta)
	c.Attributes.Resistance = entity.ClampAttribute(c.Attributes.Resistance + resistanceDelta)
	c.Attributes.Wisdom = entity.ClampAttribute(c.Attributes.Wisdom + wisdomDelta)
	c.Attributes.Honor = entity.ClampAttribute(c.Attributes.Honor + honorDelta)

	c.XP += xp
	e.RefreshLevel(c)
	studied := now
	c.LastStudyDate = &studied
	c.UpdatedAt = now

	return xp
}

// AttributesFromHistory пересчитывает пять атрибутов с нуля из полной
// истории попыток. Пустая история дает нулевые атрибуты.
func (e *Engine) AttributesFromHistory(results []entity.QuizResult, today time.Time) entity.Attributes {
	if len(results) == 0 {
		return entity.Attributes{}
	}

	return entity.Attributes{
		Strength:   e.strengthFromHistory(results),
		Agility:    e.agilityFromHistory(results),
		Resistance: e.resistanceFromHistory(results, today),
		Wisdom:     e.wisdomFromHistory(results),
		Honor:      e.honorFromHistory(results),
	}
}

// strengthFromHistory — средняя точность по темам (врагам)
func (e *Engine) strengthFromHistory(results []entity.QuizResult) int {
	type topicTotals struct {
		correct int
		total   int
	}
	byTopic := make(map[string]*topicTotals)
	for _, r := range results {
		t, ok := byTopic[r.EnemyID]
		if !ok {
			t = &topicTotals{}
			byTopic[r.EnemyID] = t
		}
		t.correct += r.CorrectAnswers
		t.total += r.TotalQuestions
	}

	if len(byTopic) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range byTopic {
		if t.total > 0 {
			sum += 100 * float64(t.correct) / float64(t.total)
		}
	}
	return entity.ClampAttribute(int(sum / float64(len(byTopic))))
}

// agilityFromHistory — линейная шкала среднего времени на вопрос:
// [30 сек, 180 сек] отображается в [100, 0]
func (e *Engine) agilityFromHistory(results []entity.QuizResult) int {
	var totalMs int64
	totalQuestions := 0
	for _, r := range results {
		totalMs += r.TimeSpentMs
		totalQuestions += r.TotalQuestions
	}
	if totalQuestions == 0 {
		return 0
	}

	avgSec := float64(totalMs) / float64(totalQuestions) / 1000
	switch {
	case avgSec <= 30:
		return 100
	case avgSec >= 180:
		return 0
	default:
		return entity.ClampAttribute(int(100 * (180 - avgSec) / 150))
	}
}

// resistanceFromHistory — 10 очков за каждый день текущей серии, до 100
func (e *Engine) resistanceFromHistory(results []entity.QuizResult, today time.Time) int {
	streak := ConsecutiveStreak(UniqueStudyDays(results), today)
	if streak > 10 {
		streak = 10
	}
	return streak * 10
}

// wisdomFromHistory — точность на условно сложном подмножестве: последние
// 30% ответов каждой сессии (детерминированная доля). Для сессий без
// детализации доля распределяется пропорционально общей точности сессии.
func (e *Engine) wisdomFromHistory(results []entity.QuizResult) int {
	hardCorrect := 0
	hardTotal := 0
	for _, r := range results {
		if len(r.Answers) > 0 {
			n := (len(r.Answers)*30 + 99) / 100 // ceil(30%)
			for _, a := range r.Answers[len(r.Answers)-n:] {
				hardTotal++
				if a.Correct {
					hardCorrect++
				}
			}
			continue
		}

		ht := (r.TotalQuestions*30 + 99) / 100
		if ht == 0 {
			continue
		}
		hardTotal += ht
		hardCorrect += r.CorrectAnswers * ht / r.TotalQuestions
	}

	if hardTotal == 0 {
		return 0
	}
	return entity.ClampAttribute(100 * hardCorrect / hardTotal)
}

// honorFromHistory — 0.7 * средняя уверенность + 0.3 * общая точность
func (e *Engine) honorFromHistory(results []entity.QuizResult) int {
	var confidenceSum float64
	correct := 0
	total := 0
	for _, r := range results {
		confidenceSum += r.ConfidenceScore
		correct += r.CorrectAnswers
		total += r.TotalQuestions
	}

	avgConfidence := confidenceSum / float64(len(results))
	accuracy := 0.0
	if total > 0 {
		accuracy = 100 * float64(correct) / float64(total)
	}
	return entity.ClampAttribute(int(0.7*avgConfidence + 0.3*accuracy))
}

// RebuildCharacter восстанавливает снимок персонажа из полного журнала.
// Снимок — лишь кеш: эта операция доказывает, что журнал авторитетен.
// Достижения и испытания переносятся из прежнего снимка (write-once).
func (e *Engine) RebuildCharacter(results []entity.QuizResult, previous *entity.Character, today time.Time) *entity.Character {
	c := entity.NewCharacter()
	if previous != nil {
		c.Achievements = append(c.Achievements[:0], previous.Achievements...)
		c.CompletedChallenges = append(c.CompletedChallenges[:0], previous.CompletedChallenges...)
	}

	c.XP = e.CalculateTotalXP(results)
	e.RefreshLevel(c)
	c.Attributes = e.AttributesFromHistory(results, today)
	c.StreakDays = ConsecutiveStreak(UniqueStudyDays(results), today)

	for _, r := range results {
		if c.LastStudyDate == nil || r.Date.After(*c.LastStudyDate) {
			d := r.Date
			c.LastStudyDate = &d
		}
	}
	c.UpdatedAt = today

	return c
}
