package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultReplyDelay      = 1500 * time.Millisecond
	defaultStreamHeartbeat = 15 * time.Second
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Widget WidgetConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	widget, err := loadWidgetConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{Server: server, Widget: widget, Log: loadLogConfig()}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges that parsing alone cannot catch.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `validate:"required"`
	AllowedOrigins  []string      `validate:"min=1,dive,required"`
	StreamHeartbeat time.Duration `validate:"gt=0"`
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	heartbeat, err := parseOptionalDurationEnv("STREAM_HEARTBEAT")
	if err != nil {
		return ServerConfig{}, err
	}
	if heartbeat == nil {
		heartbeat = durationPtr(defaultStreamHeartbeat)
	}

	cfg := ServerConfig{
		AllowedOrigins:  parseListEnv("CORS_ALLOWED_ORIGINS", ",", []string{"*"}),
		StreamHeartbeat: *heartbeat,
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		cfg.Addr = port
		return cfg, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	cfg.Addr = ":" + port
	return cfg, nil
}

// WidgetConfig 描述聊天组件的行为。
type WidgetConfig struct {
	ReplyDelay time.Duration `validate:"gt=0"`
	Timezone   string
	Location   *time.Location `validate:"required"`
	Responses  []string       `validate:"omitempty,dive,required"`
}

func loadWidgetConfig() (WidgetConfig, error) {
	delay, err := parseOptionalDurationEnv("REPLY_DELAY")
	if err != nil {
		return WidgetConfig{}, err
	}
	if delay == nil {
		delay = durationPtr(defaultReplyDelay)
	}

	timezone := getEnvOrDefault("WIDGET_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("invalid WIDGET_TIMEZONE value %q: %w", timezone, err)
	}

	return WidgetConfig{
		ReplyDelay: *delay,
		Timezone:   timezone,
		Location:   location,
		Responses:  parseListEnv("BOT_RESPONSES", "|", nil),
	}, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level slog.Level
	File  string
}

func loadLogConfig() LogConfig {
	level := slog.LevelInfo
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}
	return LogConfig{Level: level, File: strings.TrimSpace(os.Getenv("WIDGET_LOG_FILE"))}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseListEnv(key, sep string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(raw, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func durationPtr(d time.Duration) *time.Duration { return &d }
