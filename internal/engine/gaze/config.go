package gaze

import "errors"

// Config holds the gaze mapping parameters.
type Config struct {
	// HistorySize is the number of screen points kept for smoothing.
	HistorySize int `yaml:"history_size"`
	// DirectionThreshold is the raw gaze magnitude that leaves the centre bucket.
	DirectionThreshold float64 `yaml:"direction_threshold"`
	// HorizontalGain scales raw gaze x into screen space (mirrored).
	HorizontalGain float64 `yaml:"horizontal_gain"`
	// VerticalGain scales raw gaze y into screen space.
	VerticalGain float64 `yaml:"vertical_gain"`
}

// Defaults.
const (
	DefaultHistorySize        = 5
	DefaultDirectionThreshold = 0.12
	DefaultHorizontalGain     = 0.8
	DefaultVerticalGain       = 1.2
)

var errInvalidGaze = errors.New("gaze history size, threshold and gains must be positive")

// Default returns the stock parameters.
func Default() Config {
	return Config{
		HistorySize:        DefaultHistorySize,
		DirectionThreshold: DefaultDirectionThreshold,
		HorizontalGain:     DefaultHorizontalGain,
		VerticalGain:       DefaultVerticalGain,
	}
}

// WithDefaults returns a copy with unset fields taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()

	if c.HistorySize == 0 {
		c.HistorySize = d.HistorySize
	}

	if c.DirectionThreshold == 0 {
		c.DirectionThreshold = d.DirectionThreshold
	}

	if c.HorizontalGain == 0 {
		c.HorizontalGain = d.HorizontalGain
	}

	if c.VerticalGain == 0 {
		c.VerticalGain = d.VerticalGain
	}

	return c
}

// Validate checks that every parameter is positive.
func (c Config) Validate() error {
	if c.HistorySize < 1 || c.DirectionThreshold <= 0 || c.HorizontalGain <= 0 || c.VerticalGain <= 0 {
		return errInvalidGaze
	}

	return nil
}
