package service

import "errors"

// Определяем кастомные ошибки для сервисов
var (
	// ErrEnemyNotPromotable — враг не в ready; продвижение было no-op.
	ErrEnemyNotPromotable = errors.New("enemy cannot be promoted in its current state")

	// ErrEnemyNotRetreatable — врага нельзя вернуть в ready (идет повторение).
	ErrEnemyNotRetreatable = errors.New("enemy cannot retreat in its current state")

	// ErrSweepAlreadyRunning — обход авто-продвижения уже выполняется.
	ErrSweepAlreadyRunning = errors.New("promotion sweep is already running")
)
