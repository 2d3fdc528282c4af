package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Battle      BattleConfig
	Progression ProgressionConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	// Addr: адрес Redis (хост:порт)
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MaxRetries: максимальное количество попыток переподключения. По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: минимальный интервал между попытками (в миллисекундах).
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: максимальный интервал между попытками (в миллисекундах).
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// BattleConfig содержит настройки жизненного цикла врагов
type BattleConfig struct {
	// MasteryThresholdPercent: порог освоения темы в процентах. По умолчанию 80.
	MasteryThresholdPercent float64 `mapstructure:"mastery_threshold_percent"`

	// ReadyPromotionDays: сколько дней враг должен простоять в ready,
	// прежде чем начнут накапливаться очки продвижения. По умолчанию 3.
	ReadyPromotionDays int `mapstructure:"ready_promotion_days"`

	// MaxPromotionPoints: насыщение счетчика очков продвижения. По умолчанию 10.
	MaxPromotionPoints int `mapstructure:"max_promotion_points"`

	// ReviewIntervalDays: интервалы графика повторений в днях от даты освоения.
	ReviewIntervalDays []int `mapstructure:"review_interval_days"`
}

// ProgressionConfig содержит настройки движка прогрессии
type ProgressionConfig struct {
	// CharacterCacheTTLSec: время жизни кеша снимка персонажа в секундах.
	CharacterCacheTTLSec int `mapstructure:"character_cache_ttl_sec"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("battle.mastery_threshold_percent", 80.0)
	vip.SetDefault("battle.ready_promotion_days", 3)
	vip.SetDefault("battle.max_promotion_points", 10)
	vip.SetDefault("battle.review_interval_days", []int{1, 3, 7, 14, 30})
	vip.SetDefault("progression.character_cache_ttl_sec", 300)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("server.port", "SERVER_PORT")

	// 3. Путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Не страшно, если файла нет: есть BindEnv и умолчания
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит файл, env vars и умолчания)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Mastery Threshold: %.0f%%", cfg.Battle.MasteryThresholdPercent)
		log.Printf("Review Intervals (days): %v", cfg.Battle.ReviewIntervalDays)
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Battle.MasteryThresholdPercent <= 0 || cfg.Battle.MasteryThresholdPercent > 100 {
		return nil, fmt.Errorf("battle.mastery_threshold_percent must be in (0, 100], got %.2f", cfg.Battle.MasteryThresholdPercent)
	}

	return &cfg, nil
}
