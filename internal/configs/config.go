package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения.
type Config struct {
	Port    string
	AppName string

	// Адреса удалённого kos API и файлового хранилища картинок.
	KosAPIBaseURL  string
	StorageBaseURL string

	// Фиксированный таймаут исходящих запросов (по умолчанию 10 секунд).
	RequestTimeout time.Duration

	// Срок жизни токен-куки (по умолчанию 7 дней).
	TokenCookieTTL time.Duration

	MakerIDs     MakerIDs
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// MakerIDs — значение заголовка MakerID на каждый вызов.
// Удалённый API наблюдаемо принимает разные значения на разных эндпоинтах
// (1 и 62); неясно, требование это или баг, поэтому значения не схлопываем
// в одно, а держим по-эндпоинтно с наблюдаемыми дефолтами.
type MakerIDs struct {
	Login    string
	Register string
	List     string
	Detail   string
	Booking  string
	Reviews  string
}

type StdoutLogConfig struct {
	Level string // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию INFO
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Рекомендуется использовать .env файл для локальной разработки.
func LoadConfig(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnv("PORTAL_PORT", "8080"),
		AppName: getEnv("APP_NAME", "kos-portal"),

		KosAPIBaseURL:  getEnv("KOS_API_BASE_URL", "https://learn.smktelkom-mlg.sch.id/kos/api"),
		StorageBaseURL: getEnv("KOS_STORAGE_BASE_URL", "https://learn.smktelkom-mlg.sch.id/storage"),

		RequestTimeout: time.Duration(getEnvAsInt("KOS_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		TokenCookieTTL: time.Duration(getEnvAsInt("TOKEN_COOKIE_TTL_DAYS", 7)) * 24 * time.Hour,

		MakerIDs: MakerIDs{
			Login:    getEnv("MAKER_ID_LOGIN", "62"),
			Register: getEnv("MAKER_ID_REGISTER", "1"),
			List:     getEnv("MAKER_ID_LIST", "62"),
			Detail:   getEnv("MAKER_ID_DETAIL", "62"),
			Booking:  getEnv("MAKER_ID_BOOKING", "1"),
			Reviews:  getEnv("MAKER_ID_REVIEWS", "1"),
		},
	}

	cfg.StdoutLogger.Level = getEnv("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

// getEnv - вспомогательная функция для чтения переменных окружения с значением по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
