package engine

import (
	"fmt"

	"github.com/oshokin/patient-monitor/internal/engine/blink"
	"github.com/oshokin/patient-monitor/internal/engine/expression"
	"github.com/oshokin/patient-monitor/internal/engine/gaze"
	"github.com/oshokin/patient-monitor/internal/engine/gesture"
)

// Config gathers the parameters of every interpreter.
type Config struct {
	Blink      blink.Config      `yaml:"blink"`
	Expression expression.Config `yaml:"expression"`
	Gesture    gesture.Config    `yaml:"gesture"`
	Gaze       gaze.Config       `yaml:"gaze"`
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() Config {
	return Config{
		Blink:      blink.Default(),
		Expression: expression.Default(),
		Gesture:    gesture.Default(),
		Gaze:       gaze.Default(),
	}
}

// WithDefaults fills unset fields of every section.
func (c Config) WithDefaults() Config {
	return Config{
		Blink:      c.Blink.WithDefaults(),
		Expression: c.Expression.WithDefaults(),
		Gesture:    c.Gesture.WithDefaults(),
		Gaze:       c.Gaze.WithDefaults(),
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Blink.Validate(); err != nil {
		return fmt.Errorf("blink: %w", err)
	}

	if err := c.Expression.Validate(); err != nil {
		return fmt.Errorf("expression: %w", err)
	}

	if err := c.Gesture.Validate(); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}

	if err := c.Gaze.Validate(); err != nil {
		return fmt.Errorf("gaze: %w", err)
	}

	return nil
}
