// Package gaze estimates where the patient is looking from eye corner, lid
// and iris landmarks. The raw per-frame gaze vector is mapped to screen
// space, smoothed over a short window and bucketed into a direction.
package gaze
