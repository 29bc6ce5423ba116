package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	SMS          SMSConfig
	Storage      StorageConfig
	Verification VerificationConfig
	Payment      PaymentConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type StorageConfig struct {
	Dir          string
	BaseURL      string
	DefaultImage string
}

type VerificationConfig struct {
	CodeTTL     time.Duration
	MaxAttempts int
}

type PaymentConfig struct {
	SimulatedDelay time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	codeTTL, err := time.ParseDuration(viper.GetString("VERIFICATION_CODE_TTL"))
	if err != nil {
		codeTTL = 10 * time.Minute
	}

	maxAttempts := viper.GetInt("VERIFICATION_MAX_ATTEMPTS")
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	paymentDelay, err := time.ParseDuration(viper.GetString("PAYMENT_SIMULATED_DELAY"))
	if err != nil {
		paymentDelay = 2 * time.Second
	}

	defaultImage := viper.GetString("STORAGE_DEFAULT_DOCTOR_IMAGE")
	if defaultImage == "" {
		defaultImage = "/assets/images/doctor-placeholder.png"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SMS: SMSConfig{
			AccountSID: viper.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  viper.GetString("TWILIO_AUTH_TOKEN"),
			FromNumber: viper.GetString("TWILIO_FROM_NUMBER"),
		},
		Storage: StorageConfig{
			Dir:          viper.GetString("STORAGE_DIR"),
			BaseURL:      viper.GetString("STORAGE_BASE_URL"),
			DefaultImage: defaultImage,
		},
		Verification: VerificationConfig{
			CodeTTL:     codeTTL,
			MaxAttempts: maxAttempts,
		},
		Payment: PaymentConfig{
			SimulatedDelay: paymentDelay,
		},
	}

	return config, nil
}
