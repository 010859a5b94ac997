package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Database struct {
		Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
		Path     string `mapstructure:"path"`   // sqlite file
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Game struct {
		SessionMaxAgeMinutes   int  `mapstructure:"session_max_age_minutes"`
		CleanupIntervalMinutes int  `mapstructure:"cleanup_interval_minutes"`
		AudioTimeoutSeconds    int  `mapstructure:"audio_timeout_seconds"`
		AudioEnabled           bool `mapstructure:"audio_enabled"`
		SeedDemoTracks         bool `mapstructure:"seed_demo_tracks"`
	} `mapstructure:"game"`
}

func Load() *Config {
	viper.SetEnvPrefix("HITBACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")

	viper.BindEnv("database.driver")
	viper.BindEnv("database.path")
	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("game.session_max_age_minutes")
	viper.BindEnv("game.cleanup_interval_minutes")
	viper.BindEnv("game.audio_timeout_seconds")
	viper.BindEnv("game.audio_enabled")
	viper.BindEnv("game.seed_demo_tracks")

	// Defaults
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "info")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "hitback.db")

	// Sessions idle for 2h are swept; audio lookups get 4s before the round
	// proceeds without a preview.
	viper.SetDefault("game.session_max_age_minutes", 120)
	viper.SetDefault("game.cleanup_interval_minutes", 10)
	viper.SetDefault("game.audio_timeout_seconds", 4)
	viper.SetDefault("game.audio_enabled", true)
	viper.SetDefault("game.seed_demo_tracks", true)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	return &cfg
}
