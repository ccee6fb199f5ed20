// Package face contains the landmark frame handed to the engine by an
// external face-mesh detector.
//
// Points are normalized image coordinates. Index constants follow the
// MediaPipe face mesh layout with refined iris landmarks (478 points).
package face
