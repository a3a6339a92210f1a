package types

// MaxKeyPoints caps the number of key points carried by a single finding.
const MaxKeyPoints = 5

// Finding represents one piece of extracted research content.
// SourceURL references the owning Source by URL; it does not own the record.
type Finding struct {
	Topic      string   `json:"topic"`
	Content    string   `json:"content"` // truncated excerpt, up to 500 bytes
	SourceURL  string   `json:"source"`
	Confidence float64  `json:"confidence"`
	KeyPoints  []string `json:"key_points,omitempty"`
}
