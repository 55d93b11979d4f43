package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// SchedulingConfig holds the tunable constants of the availability and
// suggestion pipeline. Everything here has a code-level default; deployments
// override selectively.
type SchedulingConfig struct {
	SlotStepMinutes      int     `mapstructure:"slot_step_minutes"`
	SearchHorizonDays    int     `mapstructure:"search_horizon_days"`
	WorkingHoursStart    int     `mapstructure:"working_hours_start"`
	WorkingHoursEnd      int     `mapstructure:"working_hours_end"`
	WorkingHoursBonus    int     `mapstructure:"working_hours_bonus"`
	ConflictFreeBonus    int     `mapstructure:"conflict_free_bonus"`
	UnknownPenaltyPct    float64 `mapstructure:"unknown_penalty_pct"`
	FreeBusyCacheTTLSecs int     `mapstructure:"freebusy_cache_ttl_secs"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	S3         S3Config         `mapstructure:"s3"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the config file/environment into the
// package singleton.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("TEMPUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "tempus")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("scheduling.slot_step_minutes", 30)
	v.SetDefault("scheduling.search_horizon_days", 60)
	v.SetDefault("scheduling.working_hours_start", 8)
	v.SetDefault("scheduling.working_hours_end", 18)
	v.SetDefault("scheduling.working_hours_bonus", 10)
	v.SetDefault("scheduling.conflict_free_bonus", 5)
	v.SetDefault("scheduling.unknown_penalty_pct", 20.0)
	v.SetDefault("scheduling.freebusy_cache_ttl_secs", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded config. Panics if Load was never called; use GetSafe
// in paths that may run before initialization.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: not loaded")
	}
	return instance
}

// GetSafe returns the config and whether it has been loaded.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
