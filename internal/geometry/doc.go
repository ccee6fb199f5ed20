// Package geometry holds pure distance and ratio functions over landmarks.
// Distances are measured on the x,y projection of each point.
package geometry
