package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или коллекция не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, попытка
	// продвинуть врага, который уже находится в бою).
	ErrConflict = errors.New("resource state conflict")

	// ErrEmptyQuestionPool используется при попытке начать бой или повторение
	// для врага, у темы которого нет ни одного вопроса. Состояние не меняется.
	ErrEmptyQuestionPool = errors.New("question pool is empty")

	// ErrInvalidQuizResult используется при попытке создать результат боя
	// с нарушенными инвариантами (totalQuestions == 0, correct > total).
	// Создание отклоняется целиком, значения не усекаются.
	ErrInvalidQuizResult = errors.New("invalid quiz result")

	// ErrDuplicateName используется при создании предмета/темы/подтемы/врага,
	// имя которого совпадает с именем соседа в той же области (точное сравнение,
	// с учетом регистра).
	ErrDuplicateName = errors.New("name already exists in this scope")
)
