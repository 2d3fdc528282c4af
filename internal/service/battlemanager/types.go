package battlemanager

// Constants for default values
const (
	DefaultReadyPromotionDays = 3
	DefaultMaxPromotionPoints = 10
)

// Config содержит настройки всех компонентов BattleManager
type Config struct {
	// MasteryThresholdPercent — порог освоения темы в процентах.
	// Попытка с точностью ниже порога ранит врага; на пороге и выше — осваивает.
	MasteryThresholdPercent float64

	// ProgressMasteryThreshold — накопленный прогресс, при котором враг
	// считается освоенным независимо от последней попытки
	ProgressMasteryThreshold int

	// ReadyPromotionDays — сколько дней враг должен простоять в ready,
	// прежде чем начнут накапливаться очки продвижения
	ReadyPromotionDays int

	// MaxPromotionPoints — насыщение счетчика очков продвижения
	MaxPromotionPoints int

	// ReviewIntervalDays — интервалы графика повторений в днях от даты
	// освоения; должны строго возрастать
	ReviewIntervalDays []int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		MasteryThresholdPercent:  80,
		ProgressMasteryThreshold: 80,
		ReadyPromotionDays:       DefaultReadyPromotionDays,
		MaxPromotionPoints:       DefaultMaxPromotionPoints,
		ReviewIntervalDays:       []int{1, 3, 7, 14, 30},
	}
}
