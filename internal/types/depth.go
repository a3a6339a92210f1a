package types

// Depth controls how many sources a research run collects.
type Depth string

// Recognized research depths.
const (
	DepthShallow Depth = "shallow"
	DepthMedium  Depth = "medium"
	DepthDeep    Depth = "deep"
)

// IsValid reports whether d is one of the recognized depths.
func (d Depth) IsValid() bool {
	switch d {
	case DepthShallow, DepthMedium, DepthDeep:
		return true
	default:
		return false
	}
}

// SourceCount maps a depth to its source-count cap.
// Unrecognized values fall back to the medium cap.
func (d Depth) SourceCount() int {
	switch d {
	case DepthShallow:
		return 3
	case DepthMedium:
		return 5
	case DepthDeep:
		return 10
	default:
		return 5
	}
}
