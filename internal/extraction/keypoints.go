package extraction

import (
	"strings"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// keyPointMarkers are the line prefixes that mark a key point.
var keyPointMarkers = []string{"- ", "• ", "* ", "1.", "2.", "3."}

// markerCutset holds the characters stripped from the left of a marked line.
const markerCutset = "-•*123. "

// KeyPoints extracts up to MaxKeyPoints marked lines from content, in original
// line order. A line counts when its trimmed text starts with a bullet or
// numbered marker; the marker characters and surrounding whitespace are stripped.
func KeyPoints(content string) []string {
	var points []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !hasMarker(line) {
			continue
		}
		points = append(points, strings.TrimLeft(line, markerCutset))
		if len(points) == types.MaxKeyPoints {
			break
		}
	}

	return points
}

func hasMarker(line string) bool {
	for _, marker := range keyPointMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
