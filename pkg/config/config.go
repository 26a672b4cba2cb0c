package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for foggybot
type Config struct {
	Location LocationConfig `mapstructure:"location"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Report   ReportConfig   `mapstructure:"report"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Git      GitConfig      `mapstructure:"git"`
}

// LocationConfig identifies the fixed report location
type LocationConfig struct {
	Name      string  `mapstructure:"name"`
	State     string  `mapstructure:"state"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Timezone  string  `mapstructure:"timezone"`
}

// WeatherConfig holds weather data source options
type WeatherConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	// ForecastPeriods limits how many forecast periods feed the report prompt
	ForecastPeriods int `mapstructure:"forecast_periods"`
}

// CaptureConfig holds livestream capture options
type CaptureConfig struct {
	VideoID string `mapstructure:"video_id"`
	Dir     string `mapstructure:"dir"`
}

// ReportConfig holds report output options
type ReportConfig struct {
	File  string `mapstructure:"file"`
	Width int    `mapstructure:"width"`
}

// LLMConfig holds summarizer options
type LLMConfig struct {
	Model string `mapstructure:"model"`
}

// GitConfig holds persistence gate options
type GitConfig struct {
	AuthorName  string `mapstructure:"author_name"`
	AuthorEmail string `mapstructure:"author_email"`
	Message     string `mapstructure:"message"`
	Remote      string `mapstructure:"remote"`
}

var defaultConfig = Config{
	Location: LocationConfig{
		Name:      "Evanston",
		State:     "IL",
		Latitude:  42.032931,
		Longitude: -87.680432,
		Timezone:  "America/Chicago",
	},
	Weather: WeatherConfig{
		BaseURL:         "https://api.weather.gov",
		UserAgent:       "(foggybot, weather@foggyhq.dev)",
		ForecastPeriods: 2,
	},
	Capture: CaptureConfig{
		VideoID: "XP3Gle-S9lE",
		Dir:     "captures",
	},
	Report: ReportConfig{
		File:  "weather_report.json",
		Width: 80,
	},
	LLM: LLMConfig{
		Model: "gpt-4o-mini",
	},
	Git: GitConfig{
		AuthorName:  "GitHub Action",
		AuthorEmail: "action@github.com",
		Message:     "Update weather report [skip ci]",
		Remote:      "origin",
	},
}

// LoadConfig loads configuration from defaults, config file, and environment
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("location.name", defaultConfig.Location.Name)
	v.SetDefault("location.state", defaultConfig.Location.State)
	v.SetDefault("location.latitude", defaultConfig.Location.Latitude)
	v.SetDefault("location.longitude", defaultConfig.Location.Longitude)
	v.SetDefault("location.timezone", defaultConfig.Location.Timezone)
	v.SetDefault("weather.base_url", defaultConfig.Weather.BaseURL)
	v.SetDefault("weather.user_agent", defaultConfig.Weather.UserAgent)
	v.SetDefault("weather.forecast_periods", defaultConfig.Weather.ForecastPeriods)
	v.SetDefault("capture.video_id", defaultConfig.Capture.VideoID)
	v.SetDefault("capture.dir", defaultConfig.Capture.Dir)
	v.SetDefault("report.file", defaultConfig.Report.File)
	v.SetDefault("report.width", defaultConfig.Report.Width)
	v.SetDefault("llm.model", defaultConfig.LLM.Model)
	v.SetDefault("git.author_name", defaultConfig.Git.AuthorName)
	v.SetDefault("git.author_email", defaultConfig.Git.AuthorEmail)
	v.SetDefault("git.message", defaultConfig.Git.Message)
	v.SetDefault("git.remote", defaultConfig.Git.Remote)

	// Configuration file search paths
	v.SetConfigName(".foggybot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	// Environment variables
	v.SetEnvPrefix("FOGGYBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (optional); ignore error to use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// LoadConfigFile loads configuration from an explicit config file path,
// layered over defaults. The file must exist.
func LoadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %v", path, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config file %s: %v", path, err)
	}

	return config, nil
}

// Default returns a copy of the built-in defaults.
func Default() Config {
	return defaultConfig
}
