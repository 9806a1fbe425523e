package srt

import (
	"regexp"
	"strconv"
	"strings"
)

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// PostProcess repairs formatting artifacts in a generated SRT document:
// every timing line gets a numeric index line immediately before it
// (inserted, sequentially numbered, when missing) and runs of more than
// one blank line between blocks collapse to exactly one. Block text and
// timestamps are never altered. PostProcess is a fixed point:
// PostProcess(PostProcess(x)) == PostProcess(x).
func PostProcess(content string) string {
	lines := strings.Split(content, "\n")
	processed := make([]string, 0, len(lines))
	timingsSeen := 0

	for _, line := range lines {
		if timestampRegex.MatchString(line) {
			timingsSeen++
			if !previousIsIndex(processed) {
				processed = append(processed, strconv.Itoa(timingsSeen))
			}
			processed = append(processed, line)
			continue
		}
		processed = append(processed, line)
	}

	result := strings.Join(processed, "\n")
	return blankRunRegex.ReplaceAllString(result, "\n\n")
}

func previousIsIndex(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return false
	}
	_, err := strconv.Atoi(last)
	return err == nil
}
