package gesture

import "errors"

// Config holds head pose thresholds in mirrored normalized coordinates.
type Config struct {
	// LeftThreshold is the mirrored nose x below which the head points left.
	LeftThreshold float64 `yaml:"left_threshold"`
	// RightThreshold is the mirrored nose x above which the head points right.
	RightThreshold float64 `yaml:"right_threshold"`
	// UpThreshold is the nose y below which the head points up.
	UpThreshold float64 `yaml:"up_threshold"`
	// DownThreshold is the nose y above which the head points down.
	DownThreshold float64 `yaml:"down_threshold"`
	// SequenceFrames is how many frames a sequence may idle before it is abandoned.
	SequenceFrames int `yaml:"sequence_frames"`
}

// Defaults.
const (
	DefaultLeftThreshold  = 0.47
	DefaultRightThreshold = 0.53
	DefaultUpThreshold    = 0.43
	DefaultDownThreshold  = 0.60
	DefaultSequenceFrames = 60
)

var (
	errHorizontalBand = errors.New("left threshold must be below right threshold")
	errVerticalBand   = errors.New("up threshold must be below down threshold")
	errSequenceFrames = errors.New("sequence frames must be positive")
)

// Default returns the stock thresholds.
func Default() Config {
	return Config{
		LeftThreshold:  DefaultLeftThreshold,
		RightThreshold: DefaultRightThreshold,
		UpThreshold:    DefaultUpThreshold,
		DownThreshold:  DefaultDownThreshold,
		SequenceFrames: DefaultSequenceFrames,
	}
}

// WithDefaults returns a copy with unset fields taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()

	if c.LeftThreshold == 0 {
		c.LeftThreshold = d.LeftThreshold
	}

	if c.RightThreshold == 0 {
		c.RightThreshold = d.RightThreshold
	}

	if c.UpThreshold == 0 {
		c.UpThreshold = d.UpThreshold
	}

	if c.DownThreshold == 0 {
		c.DownThreshold = d.DownThreshold
	}

	if c.SequenceFrames == 0 {
		c.SequenceFrames = d.SequenceFrames
	}

	return c
}

// Validate checks threshold ordering.
func (c Config) Validate() error {
	if c.LeftThreshold >= c.RightThreshold {
		return errHorizontalBand
	}

	if c.UpThreshold >= c.DownThreshold {
		return errVerticalBand
	}

	if c.SequenceFrames < 1 {
		return errSequenceFrames
	}

	return nil
}
