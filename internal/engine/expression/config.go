package expression

import "errors"

// Config holds the classification thresholds.
type Config struct {
	// SmileThreshold is the mouth-to-face width ratio above which the patient is happy.
	SmileThreshold float64 `yaml:"smile_threshold"`
	// MouthOpenThreshold is the mouth-to-face height ratio above which the patient is surprised.
	MouthOpenThreshold float64 `yaml:"mouth_open_threshold"`
	// BrowFurrowThreshold is the brow-to-face width ratio below which the patient is angry.
	BrowFurrowThreshold float64 `yaml:"brow_furrow_threshold"`
}

// Defaults.
const (
	DefaultSmileThreshold      = 0.42
	DefaultMouthOpenThreshold  = 0.18
	DefaultBrowFurrowThreshold = 0.125
)

var errNonPositiveThreshold = errors.New("expression thresholds must be positive")

// Default returns the stock thresholds.
func Default() Config {
	return Config{
		SmileThreshold:      DefaultSmileThreshold,
		MouthOpenThreshold:  DefaultMouthOpenThreshold,
		BrowFurrowThreshold: DefaultBrowFurrowThreshold,
	}
}

// WithDefaults returns a copy with unset thresholds taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()

	if c.SmileThreshold == 0 {
		c.SmileThreshold = d.SmileThreshold
	}

	if c.MouthOpenThreshold == 0 {
		c.MouthOpenThreshold = d.MouthOpenThreshold
	}

	if c.BrowFurrowThreshold == 0 {
		c.BrowFurrowThreshold = d.BrowFurrowThreshold
	}

	return c
}

// Validate checks that every threshold is positive.
func (c Config) Validate() error {
	if c.SmileThreshold <= 0 || c.MouthOpenThreshold <= 0 || c.BrowFurrowThreshold <= 0 {
		return errNonPositiveThreshold
	}

	return nil
}
