package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_Validate_MultipleChoice(t *testing.T) {
	// Arrange
	question := &Question{
		ID:   "q1",
		Text: "Какая столица у Франции?",
		Type: QuestionTypeMultipleChoice,
		Options: []QuestionOption{
			{ID: "o1", Text: "Париж", Correct: true},
			{ID: "o2", Text: "Лион"},
			{ID: "o3", Text: "Марсель"},
		},
		Difficulty: DifficultyEasy,
	}

	// Act & Assert
	assert.NoError(t, question.Validate(), "Валидный вопрос не должен давать ошибку")
}

func TestQuestion_Validate_MultipleCorrectOptions(t *testing.T) {
	// Arrange: несколько правильных вариантов допустимы для multiple_choice
	question := &Question{
		ID:   "q1",
		Text: "Какие из чисел четные?",
		Type: QuestionTypeMultipleChoice,
		Options: []QuestionOption{
			{ID: "o1", Text: "2", Correct: true},
			{ID: "o2", Text: "3"},
			{ID: "o3", Text: "4", Correct: true},
		},
	}

	// Act & Assert
	assert.NoError(t, question.Validate(), "Несколько правильных вариантов допустимы")
	assert.ElementsMatch(t, []string{"o1", "o3"}, question.CorrectOptionIDs())
}

func TestQuestion_Validate_NoCorrectOption(t *testing.T) {
	// Arrange
	question := &Question{
		ID:   "q1",
		Text: "Вопрос без правильного ответа",
		Type: QuestionTypeMultipleChoice,
		Options: []QuestionOption{
			{ID: "o1", Text: "A"},
			{ID: "o2", Text: "B"},
		},
	}

	// Act & Assert
	assert.Error(t, question.Validate(), "Вопрос без правильного варианта должен отклоняться")
}

func TestQuestion_Validate_TrueFalse(t *testing.T) {
	testCases := []struct {
		name    string
		options []QuestionOption
		wantErr bool
	}{
		{
			"ровно два варианта, один правильный",
			[]QuestionOption{
				{ID: "o1", Text: "Верно", Correct: true},
				{ID: "o2", Text: "Неверно"},
			},
			false,
		},
		{
			"три варианта недопустимы",
			[]QuestionOption{
				{ID: "o1", Text: "Верно", Correct: true},
				{ID: "o2", Text: "Неверно"},
				{ID: "o3", Text: "Не знаю"},
			},
			true,
		},
		{
			"оба варианта правильные недопустимы",
			[]QuestionOption{
				{ID: "o1", Text: "Верно", Correct: true},
				{ID: "o2", Text: "Неверно", Correct: true},
			},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			question := &Question{
				ID:      "q1",
				Text:    "Земля круглая?",
				Type:    QuestionTypeTrueFalse,
				Options: tc.options,
			}

			err := question.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestion_Validate_EmptyText(t *testing.T) {
	question := &Question{
		Type: QuestionTypeMultipleChoice,
		Options: []QuestionOption{
			{ID: "o1", Text: "A", Correct: true},
			{ID: "o2", Text: "B"},
		},
	}
	assert.Error(t, question.Validate(), "Вопрос без текста должен отклоняться")
}

func TestQuestion_IsCorrectOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: []QuestionOption{
			{ID: "o1", Text: "A", Correct: true},
			{ID: "o2", Text: "B"},
		},
	}

	// Act & Assert
	assert.True(t, question.IsCorrectOption("o1"), "o1 помечен правильным")
	assert.False(t, question.IsCorrectOption("o2"), "o2 не помечен правильным")
	assert.False(t, question.IsCorrectOption("missing"), "Неизвестный вариант не правильный")
}

func TestParseDifficulty(t *testing.T) {
	testCases := []struct {
		input    string
		expected Difficulty
	}{
		{"easy", DifficultyEasy},
		{"medium", DifficultyMedium},
		{"hard", DifficultyHard},
		{"", DifficultyEasy},
		{"extreme", DifficultyEasy},
		{"HARD", DifficultyEasy},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, ParseDifficulty(tc.input),
				"Неизвестная сложность должна трактоваться как easy")
		})
	}
}
