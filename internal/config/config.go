package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	XP            XPConfig            `yaml:"xp"`
	Lives         LivesConfig         `yaml:"lives"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// XPParams are the tunables of the XP award formula for one session context.
// They live in configuration so practice and challenge can be tuned
// independently of the call sites.
type XPParams struct {
	PartialCredit    float64 `yaml:"partial_credit"`
	StreakRate       float64 `yaml:"streak_rate"`
	StreakCap        float64 `yaml:"streak_cap"`
	IdealTimeSeconds float64 `yaml:"ideal_time_seconds"`
	SpeedFloor       float64 `yaml:"speed_floor"`
	SpeedCeiling     float64 `yaml:"speed_ceiling"`
}

type XPConfig struct {
	Lesson    XPParams `yaml:"lesson"`
	Practice  XPParams `yaml:"practice"`
	Challenge XPParams `yaml:"challenge"`
}

type LivesConfig struct {
	Max          int `yaml:"max"`
	RegenMinutes int `yaml:"regen_minutes"`
	RefillCost   int `yaml:"refill_cost"`
}

type NotificationsConfig struct {
	Capacity      int `yaml:"capacity"`
	WarnThreshold int `yaml:"warn_threshold"`
}

// Default returns the built-in configuration. Load starts from these values
// so a partial config file only overrides what it names.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		XP: XPConfig{
			Lesson: XPParams{
				PartialCredit:    0.25,
				StreakRate:       0.05,
				StreakCap:        0.5,
				IdealTimeSeconds: 20,
				SpeedFloor:       0.5,
				SpeedCeiling:     1.5,
			},
			Practice: XPParams{
				PartialCredit:    0.25,
				StreakRate:       0.03,
				StreakCap:        0.3,
				IdealTimeSeconds: 25,
				SpeedFloor:       0.5,
				SpeedCeiling:     1.25,
			},
			Challenge: XPParams{
				PartialCredit:    0.1,
				StreakRate:       0.1,
				StreakCap:        1.0,
				IdealTimeSeconds: 15,
				SpeedFloor:       0.75,
				SpeedCeiling:     2.0,
			},
		},
		Lives: LivesConfig{
			Max:          5,
			RegenMinutes: 30,
			RefillCost:   350,
		},
		Notifications: NotificationsConfig{
			Capacity:      100,
			WarnThreshold: 90,
		},
	}
}

// Load reads a yaml config file over the defaults. A missing file is not an
// error; the defaults are used as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, p := range map[string]XPParams{
		"lesson":    c.XP.Lesson,
		"practice":  c.XP.Practice,
		"challenge": c.XP.Challenge,
	} {
		if p.PartialCredit <= 0 || p.PartialCredit >= 1 {
			return fmt.Errorf("xp.%s.partial_credit must be in (0,1)", name)
		}
		if p.SpeedFloor <= 0 || p.SpeedCeiling < p.SpeedFloor {
			return fmt.Errorf("xp.%s speed bounds invalid", name)
		}
		if p.IdealTimeSeconds <= 0 {
			return fmt.Errorf("xp.%s.ideal_time_seconds must be positive", name)
		}
	}
	if c.Lives.Max <= 0 {
		return fmt.Errorf("lives.max must be positive")
	}
	if c.Notifications.WarnThreshold > c.Notifications.Capacity {
		return fmt.Errorf("notifications.warn_threshold exceeds capacity")
	}
	return nil
}
