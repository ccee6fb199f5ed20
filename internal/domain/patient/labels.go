package patient

// EyeStatus is the per-frame openness label.
type EyeStatus string

// Eye statuses.
const (
	EyeOpen   EyeStatus = "Open"
	EyeClosed EyeStatus = "Closed"
)

// Status is the sleep/wake state of the patient.
type Status string

// Sleep/wake statuses.
const (
	Awake    Status = "Awake"
	Sleeping Status = "Sleeping"
)

// Expression is a classified facial expression.
type Expression string

// Expressions.
const (
	Neutral   Expression = "Neutral"
	Happy     Expression = "Happy"
	Surprised Expression = "Surprised"
	Angry     Expression = "Angry"
)

// Expressions returns every expression in report order.
func Expressions() []Expression {
	return []Expression{Happy, Surprised, Neutral, Angry}
}

// Direction is a discrete head or gaze direction.
type Direction string

// Directions.
const (
	Center Direction = "Center"
	Left   Direction = "Left"
	Right  Direction = "Right"
	Up     Direction = "Up"
	Down   Direction = "Down"
)

// Action is a request signalled by the patient.
type Action string

// Actions. ActionNone is only used as the initial LastAction of a snapshot.
const (
	ActionNone        Action = "None"
	WaterRequested    Action = "Water Requested"
	FoodRequested     Action = "Food Requested"
	WashroomRequested Action = "Washroom Requested"
	EmergencyAlert    Action = "EMERGENCY ALERT"
)

// ParseAction converts a wire value back to an Action.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case WaterRequested, FoodRequested, WashroomRequested, EmergencyAlert:
		return a, true
	default:
		return ActionNone, false
	}
}
