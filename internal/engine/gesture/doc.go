// Package gesture derives the head direction from the nose landmark and
// matches short sequences of direction changes against fixed request
// patterns. A sequence left idle for too many frames is abandoned.
package gesture
