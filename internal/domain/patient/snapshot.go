package patient

import "time"

// Coordinates is a 2-D point in normalized space.
type Coordinates struct {
	X float64
	Y float64
}

// Snapshot is the consolidated published state of the engine.
// It holds no references into engine state and can be shared freely.
type Snapshot struct {
	// UpdatedAt is the time of the last processed frame or tick.
	UpdatedAt time.Time
	// Frames counts successfully processed frames.
	Frames uint64

	EyeStatus          EyeStatus
	LeftEyeRatio       float64
	RightEyeRatio      float64
	EyeRatio           float64
	ConsecutiveBlinks  int
	TotalBlinks        int
	BlinkRate          int
	TimeSinceLastBlink time.Duration

	PatientStatus Status

	Expression          Expression
	ExpressionDurations ExpressionDurations

	HeadPose     Direction
	Nose         Coordinates
	NoseDetected bool

	GazePoint     Coordinates
	RawGaze       Coordinates
	GazeDirection Direction

	LastAction Action
}

// NewSnapshot returns the state published before any frame is processed.
func NewSnapshot(now time.Time) Snapshot {
	return Snapshot{
		UpdatedAt:     now,
		EyeStatus:     EyeOpen,
		PatientStatus: Awake,
		Expression:    Neutral,
		HeadPose:      Center,
		GazePoint:     Coordinates{X: 0.5, Y: 0.5},
		GazeDirection: Center,
		LastAction:    ActionNone,
	}
}
