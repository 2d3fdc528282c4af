package progression

import (
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
)

// Базовые значения опыта
const (
	// XPEasy, XPMedium, XPHard — опыт за правильный ответ по сложности
	XPEasy   = 3
	XPMedium = 5
	XPHard   = 10

	// QuizCompletionXP — опыт за завершение боя, независимо от его размера
	QuizCompletionXP = 30

	// HighScoreBonusXP — бонус за точность >= 80% в одном бою
	HighScoreBonusXP = 50

	// TopicTouchedXP — бонус за каждую затронутую тему в истории (награда за широту)
	TopicTouchedXP = 10

	// highScoreRatio — порог точности для бонуса за высокий результат
	highScoreRatio = 0.8
)

// XPForCorrectAnswer возвращает опыт за правильный ответ заданной сложности.
// Неизвестная сложность трактуется как easy (документированный fallback).
func XPForCorrectAnswer(difficulty entity.Difficulty) int {
	switch difficulty {
	case entity.DifficultyHard:
		return XPHard
	case entity.DifficultyMedium:
		return XPMedium
	default:
		return XPEasy
	}
}

// XPForQuizCompletion возвращает опыт за завершение боя
func XPForQuizCompletion() int {
	return QuizCompletionXP
}

// XPBonusForHighScore возвращает бонус за высокую точность.
// При total == 0 возвращает 0 (деление не выполняется).
func XPBonusForHighScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	if float64(correct)/float64(total) >= highScoreRatio {
		return HighScoreBonusXP
	}
	return 0
}

// ConfidenceScore возвращает долю уверенно-правильных ответов в [0, 100]:
// правильные ответы с тегом certainty, делённые на все правильные ответы.
// Уверенность требует явного тега: правильный ответ без тега не считается.
// При нуле правильных ответов возвращает 0.
func ConfidenceScore(answers []entity.QuizAnswer) float64 {
	correct := 0
	certain := 0
	for _, a := range answers {
		if !a.Correct {
			continue
		}
		correct++
		if a.Confidence == entity.ConfidenceCertainty {
			certain++
		}
	}
	if correct == 0 {
		return 0
	}
	return 100 * float64(certain) / float64(correct)
}

// StreakDayXP возвращает опыт за день серии с индексом dayIndex (с единицы).
// Множитель растет каждые 5 дней: дни 1-5 дают 2, дни 6-10 дают 4 и т.д.
func StreakDayXP(dayIndex int) int {
	if dayIndex < 1 {
		return 0
	}
	return 2 * ((dayIndex-1)/5 + 1)
}

// CumulativeStreakXP возвращает суммарный опыт за серию длиной streakLength:
// эскалирующий множитель применяется к каждому дню, а не только к последнему.
func CumulativeStreakXP(streakLength int) int {
	total := 0
	for day := 1; day <= streakLength; day++ {
		total += StreakDayXP(day)
	}
	return total
}
