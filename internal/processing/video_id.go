package processing

import (
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ParseVideoID accepts either a bare video id or any common YouTube URL form
// and returns the video id. Bare ids are passed through untouched.
func ParseVideoID(input string) string {
	input = strings.TrimSpace(input)
	if m := videoIDPattern.FindStringSubmatch(input); len(m) > 1 {
		return m[1]
	}
	return input
}
