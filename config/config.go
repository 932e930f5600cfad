package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPreviewDB    int    `mapstructure:"REDIS_PREVIEW_DB"`
	AvailabilityTTLOn bool   `mapstructure:"AVAILABILITY_CACHE"`

	// Booking engine configuration.
	SlotGranularityMinutes int     `mapstructure:"SLOT_GRANULARITY_MINUTES"`
	BonusPointValue        float64 `mapstructure:"BONUS_POINT_VALUE"`
	MinRedeemPoints        int     `mapstructure:"MIN_REDEEM_POINTS"`
	BookingPointsRate      float64 `mapstructure:"BOOKING_POINTS_RATE"`
	AllowPastCancel        bool    `mapstructure:"ALLOW_PAST_CANCEL"`
	AutoCompleteCron       string  `mapstructure:"AUTO_COMPLETE_CRON"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "barberly")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_PREVIEW_DB", 1)
	viper.SetDefault("AVAILABILITY_CACHE", true)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 15)
	viper.SetDefault("BONUS_POINT_VALUE", 0.10)
	viper.SetDefault("MIN_REDEEM_POINTS", 100)
	viper.SetDefault("BOOKING_POINTS_RATE", 1.0)
	viper.SetDefault("ALLOW_PAST_CANCEL", false)
	viper.SetDefault("AUTO_COMPLETE_CRON", "*/10 * * * *")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
