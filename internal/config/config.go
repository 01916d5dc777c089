package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// WeekendDays are the weekday names that run the weekend/holiday
	// routine. Defaults to Friday, Saturday and Sunday when omitted.
	WeekendDays []string `yaml:"weekendDays,omitempty"`

	// HolidayRules are RRULE strings; dates matching any rule run the
	// weekend/holiday routine regardless of weekday.
	HolidayRules []string `yaml:"holidayRules,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Load loads and validates the configuration from escala_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the weekday names and the
// holiday rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, name := range cfg.WeekendDays {
		if _, ok := weekdayNames[name]; !ok {
			return fmt.Errorf("invalid weekday in weekendDays[%d]: %q", i, name)
		}
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// WeekendSet returns the weekdays that run the weekend/holiday routine.
func (c *Config) WeekendSet() map[time.Weekday]bool {
	if len(c.WeekendDays) == 0 {
		return map[time.Weekday]bool{
			time.Friday:   true,
			time.Saturday: true,
			time.Sunday:   true,
		}
	}

	set := make(map[time.Weekday]bool, len(c.WeekendDays))
	for _, name := range c.WeekendDays {
		if day, ok := weekdayNames[name]; ok {
			set[day] = true
		}
	}
	return set
}

// HolidayCalendar builds the holiday lookup from the configured rules.
func (c *Config) HolidayCalendar() (*HolidayCalendar, error) {
	rules := make([]*rrule.RRule, 0, len(c.HolidayRules))
	for i, rule := range c.HolidayRules {
		r, err := rrule.StrToRRule(rule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
		rules = append(rules, r)
	}
	return &HolidayCalendar{rules: rules}, nil
}

// HolidayCalendar answers whether a calendar date matches any configured
// holiday recurrence rule.
type HolidayCalendar struct {
	rules []*rrule.RRule
}

// IsHoliday reports whether any rule has an occurrence on t's calendar day.
func (h *HolidayCalendar) IsHoliday(t time.Time) bool {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	for _, r := range h.rules {
		if len(r.Between(dayStart, dayEnd, true)) > 0 {
			return true
		}
	}
	return false
}

// findConfigFile searches for escala_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "escala_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
