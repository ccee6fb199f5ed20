// Package ring provides a fixed-capacity FIFO buffer used for the engine's
// rolling windows. Pushing into a full buffer evicts the oldest element.
package ring
