package blink

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the eye state machine thresholds.
type Config struct {
	// ClosedThreshold is the average eye aspect ratio below which eyes are closed.
	ClosedThreshold float64 `yaml:"closed_threshold"`
	// SleepFrames is the number of consecutive closed frames after which the patient is asleep.
	SleepFrames int `yaml:"sleep_frames"`
	// WakeFrames is the number of consecutive open frames after which the patient is awake.
	WakeFrames int `yaml:"wake_frames"`
	// ResetFrames is the number of open frames after a blink that close a blink run.
	ResetFrames int `yaml:"reset_frames"`
	// WaterBlinks is the exact run length that requests water.
	WaterBlinks int `yaml:"water_blinks"`
	// FoodBlinks is the exact run length that requests food.
	FoodBlinks int `yaml:"food_blinks"`
	// RateWindow is the trailing window for the blink rate.
	RateWindow time.Duration `yaml:"rate_window"`
	// LogCapacity bounds the blink timestamp log.
	LogCapacity int `yaml:"log_capacity"`
}

// Defaults.
const (
	DefaultClosedThreshold = 0.23
	DefaultSleepFrames     = 210
	DefaultWakeFrames      = 210
	DefaultResetFrames     = 50
	DefaultWaterBlinks     = 5
	DefaultFoodBlinks      = 7
	DefaultRateWindow      = time.Minute
	DefaultLogCapacity     = 4096
)

var (
	errThresholdRange = errors.New("closed threshold must be in (0, 1)")
	errSameRunLength  = errors.New("water and food blink counts must differ")
)

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ClosedThreshold: DefaultClosedThreshold,
		SleepFrames:     DefaultSleepFrames,
		WakeFrames:      DefaultWakeFrames,
		ResetFrames:     DefaultResetFrames,
		WaterBlinks:     DefaultWaterBlinks,
		FoodBlinks:      DefaultFoodBlinks,
		RateWindow:      DefaultRateWindow,
		LogCapacity:     DefaultLogCapacity,
	}
}

// WithDefaults returns a copy with every unset field taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()

	if c.ClosedThreshold == 0 {
		c.ClosedThreshold = d.ClosedThreshold
	}

	if c.SleepFrames == 0 {
		c.SleepFrames = d.SleepFrames
	}

	if c.WakeFrames == 0 {
		c.WakeFrames = d.WakeFrames
	}

	if c.ResetFrames == 0 {
		c.ResetFrames = d.ResetFrames
	}

	if c.WaterBlinks == 0 {
		c.WaterBlinks = d.WaterBlinks
	}

	if c.FoodBlinks == 0 {
		c.FoodBlinks = d.FoodBlinks
	}

	if c.RateWindow == 0 {
		c.RateWindow = d.RateWindow
	}

	if c.LogCapacity == 0 {
		c.LogCapacity = d.LogCapacity
	}

	return c
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ClosedThreshold <= 0 || c.ClosedThreshold >= 1 {
		return errThresholdRange
	}

	for name, v := range map[string]int{
		"sleep_frames": c.SleepFrames,
		"wake_frames":  c.WakeFrames,
		"reset_frames": c.ResetFrames,
		"water_blinks": c.WaterBlinks,
		"food_blinks":  c.FoodBlinks,
		"log_capacity": c.LogCapacity,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if c.RateWindow <= 0 {
		return fmt.Errorf("rate_window must be positive, got %s", c.RateWindow)
	}

	if c.WaterBlinks == c.FoodBlinks {
		return errSameRunLength
	}

	return nil
}
