package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// Моки репозиториев определены в quiz_service_test.go

func TestSubjectService_CreateSubject_Success(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return([]entity.Subject{}, nil)
	mockSubjectRepo.On("SaveAll", mock.AnythingOfType("[]entity.Subject")).Return(nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Act
	subject, err := subjectService.CreateSubject("Древняя Греция")

	// Assert
	require.NoError(t, err, "Создание предмета должно быть успешным")
	require.NotNil(t, subject)
	assert.Equal(t, "Древняя Греция", subject.Name)
	assert.NotEmpty(t, subject.ID)
	assert.Empty(t, subject.Topics)
	mockSubjectRepo.AssertExpectations(t)
}

func TestSubjectService_CreateSubject_DuplicateName(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return([]entity.Subject{
		{ID: "subj-1", Name: "Древняя Греция"},
	}, nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Act
	subject, err := subjectService.CreateSubject("Древняя Греция")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName, "Точное совпадение имени отклоняется")
	assert.Nil(t, subject)
	mockSubjectRepo.AssertNotCalled(t, "SaveAll")
}

func TestSubjectService_CreateSubject_CaseSensitiveNames(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return([]entity.Subject{
		{ID: "subj-1", Name: "Древняя Греция"},
	}, nil)
	mockSubjectRepo.On("SaveAll", mock.AnythingOfType("[]entity.Subject")).Return(nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Act: сравнение с учетом регистра, другое написание допустимо
	subject, err := subjectService.CreateSubject("древняя греция")

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, subject)
}

func TestSubjectService_AddTopic_DuplicateWithinSubject(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return([]entity.Subject{
		{
			ID:   "subj-1",
			Name: "История",
			Topics: []entity.Topic{
				{ID: "topic-1", Name: "Спарта"},
			},
		},
	}, nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Act
	topic, err := subjectService.AddTopic("subj-1", "Спарта")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)
	assert.Nil(t, topic)
	mockSubjectRepo.AssertNotCalled(t, "SaveAll")
}

func TestSubjectService_AddTopic_SubjectNotFound(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return([]entity.Subject{}, nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Act
	topic, err := subjectService.AddTopic("ghost", "Спарта")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, topic)
}

func TestSubjectService_AddQuestion_InvalidQuestionRejected(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	// Вопрос без правильного варианта нарушает инвариант
	question := entity.Question{
		Text: "Кто победил при Фермопилах?",
		Type: entity.QuestionTypeMultipleChoice,
		Options: []entity.QuestionOption{
			{Text: "Вариант 1"},
			{Text: "Вариант 2"},
		},
	}

	// Act
	added, err := subjectService.AddQuestion("subj-1", "topic-1", "", question)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Инварианты вопроса проверяются до записи")
	assert.Nil(t, added)
	mockSubjectRepo.AssertNotCalled(t, "SaveAll")
}

func TestSubjectService_AddQuestion_AssignsIDs(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return(subjectTreeFixture(), nil)
	mockSubjectRepo.On("SaveAll", mock.AnythingOfType("[]entity.Subject")).Return(nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	question := entity.Question{
		Text: "Сколько эфоров избиралось ежегодно?",
		Type: entity.QuestionTypeMultipleChoice,
		Options: []entity.QuestionOption{
			{Text: "Пять", Correct: true},
			{Text: "Семь"},
		},
		Difficulty: entity.DifficultyMedium,
	}

	// Act
	added, err := subjectService.AddQuestion("subj-1", "topic-1", "", question)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.NotEmpty(t, added.ID, "Идентификатор вопроса назначается сервисом")
	for _, opt := range added.Options {
		assert.NotEmpty(t, opt.ID, "Идентификаторы вариантов назначаются сервисом")
	}
	mockSubjectRepo.AssertExpectations(t)
}

func TestSubjectService_GetSubjects_RecomputesProgress(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockResultRepo := new(MockQuizResultRepository)

	mockSubjectRepo.On("GetAll").Return(subjectTreeFixture(), nil)
	// По q1 три попытки, две правильные; q2 не отвечали
	mockResultRepo.On("GetAll").Return([]entity.QuizResult{
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 1,
			TotalQuestions: 1,
			Answers:        []entity.QuizAnswer{{QuestionID: "q1", Correct: true}},
			Date:           time.Now().AddDate(0, 0, -2),
		},
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 1,
			TotalQuestions: 1,
			Answers:        []entity.QuizAnswer{{QuestionID: "q1", Correct: true}},
			Date:           time.Now().AddDate(0, 0, -1),
		},
		{
			EnemyID:        "enemy-1",
			CorrectAnswers: 0,
			TotalQuestions: 1,
			Answers:        []entity.QuizAnswer{{QuestionID: "q1", Correct: false}},
			Date:           time.Now(),
		},
	}, nil)

	subjectService := NewSubjectService(mockSubjectRepo, mockResultRepo)

	// Act
	subjects, err := subjectService.GetSubjects()

	// Assert
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	// 2 из 3 правильных: 66% на всех уровнях дерева
	assert.Equal(t, 66, subjects[0].Progress, "Прогресс предмета выводится из журнала")
	assert.Equal(t, 66, subjects[0].Topics[0].Progress, "Прогресс темы выводится из журнала")
}

func TestSubjectService_GetSubjects_NoHistoryZeroProgress(t *testing.T) {
	// Arrange
	mockSubjectRepo := new(MockSubjectRepository)
	mockResultRepo := new(MockQuizResultRepository)
	mockSubjectRepo.On("GetAll").Return(subjectTreeFixture(), nil)
	mockResultRepo.On("GetAll").Return([]entity.QuizResult{}, nil)

	subjectService := NewSubjectService(mockSubjectRepo, mockResultRepo)

	// Act
	subjects, err := subjectService.GetSubjects()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, subjects[0].Progress, "Без истории прогресс нулевой, без деления на ноль")
}

func TestSubjectService_QuestionPool_TopicIncludesSubTopics(t *testing.T) {
	// Arrange
	subjects := subjectTreeFixture()
	subjects[0].Topics[0].SubTopics = []entity.SubTopic{
		{
			ID:   "sub-1",
			Name: "Агогэ",
			Questions: []entity.Question{
				questionFixture("q3", entity.DifficultyMedium),
			},
		},
	}

	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("GetAll").Return(subjects, nil)

	subjectService := NewSubjectService(mockSubjectRepo, new(MockQuizResultRepository))

	enemyOnTopic := &entity.Enemy{ID: "e1", SubjectID: "subj-1", TopicID: "topic-1"}
	enemyOnSubTopic := &entity.Enemy{ID: "e2", SubjectID: "subj-1", TopicID: "topic-1", SubTopicID: "sub-1"}

	// Act
	topicPool, err := subjectService.QuestionPool(enemyOnTopic)
	require.NoError(t, err)
	subTopicPool, err := subjectService.QuestionPool(enemyOnSubTopic)
	require.NoError(t, err)

	// Assert
	assert.Len(t, topicPool, 3, "Пул темы включает вопросы подтем")
	assert.Len(t, subTopicPool, 1, "Пул подтемы ограничен ее вопросами")
}
