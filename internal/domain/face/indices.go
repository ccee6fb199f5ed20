package face

// Landmark indices used by the engine.
const (
	// NoseTip is the landmark tracked for head pose.
	NoseTip = 1

	// MouthLeft and MouthRight are the outer mouth corners.
	MouthLeft  = 61
	MouthRight = 291
	// LipTop and LipBottom are the inner lip midpoints.
	LipTop    = 13
	LipBottom = 14

	// FaceLeft and FaceRight bound the face horizontally.
	FaceLeft  = 234
	FaceRight = 454
	// Forehead and Chin bound the face vertically.
	Forehead = 10
	Chin     = 152

	// BrowInnerLeft and BrowInnerRight are the inner eyebrow ends.
	BrowInnerLeft  = 55
	BrowInnerRight = 285

	// Right eye corners and lids.
	RightEyeOuter  = 33
	RightEyeInner  = 133
	RightEyeTop    = 159
	RightEyeBottom = 145

	// Left eye corners and lids.
	LeftEyeOuter  = 362
	LeftEyeInner  = 263
	LeftEyeTop    = 386
	LeftEyeBottom = 374

	// MeshSize is the landmark count of a refined face mesh.
	MeshSize = 478
)

// Eye aspect ratio contours ordered as
// [outer corner, upper outer, upper inner, inner corner, lower inner, lower outer].
var (
	//nolint:gochecknoglobals // Fixed landmark layout.
	RightEyeContour = [6]int{33, 160, 158, 133, 153, 144}
	//nolint:gochecknoglobals // Fixed landmark layout.
	LeftEyeContour = [6]int{362, 385, 387, 263, 373, 380}
)

// Iris rings for refined meshes.
var (
	//nolint:gochecknoglobals // Fixed landmark layout.
	RightIris = [4]int{469, 470, 471, 472}
	//nolint:gochecknoglobals // Fixed landmark layout.
	LeftIris = [4]int{474, 475, 476, 477}
)
