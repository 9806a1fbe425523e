package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Block represents one numbered, timed caption in a subtitle document.
type Block struct {
	Index int
	Start int64 // milliseconds
	End   int64 // milliseconds
	Text  string
}

// timestampRegex matches an SRT timing line, e.g.
// "00:00:01,000 --> 00:00:05,000".
var timestampRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)

// FormatTimestamp converts a millisecond offset to the SRT timestamp
// format HH:MM:SS,mmm with zero padding.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	millis := ms % 1000
	minutes := seconds / 60
	seconds = seconds % 60
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp converts an SRT timestamp back to a millisecond offset.
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(parts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || millis > 999 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	total := int64(hours)*3600 + int64(minutes)*60 + int64(seconds)
	return total*1000 + int64(millis), nil
}

// Render serializes blocks into the standard SRT grammar: index line,
// timing line, text, blank line separator. Blocks are renumbered
// sequentially from 1 regardless of their Index fields.
func Render(blocks []Block) string {
	var b strings.Builder
	for i, block := range blocks {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(block.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(block.End))
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(block.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Parse reads an SRT document into blocks. It is lenient: missing index
// lines are tolerated and blocks with unparseable timing lines or empty
// text are skipped.
func Parse(content string) []Block {
	var blocks []Block
	var current *Block
	var text strings.Builder

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(text.String())
			if current.Text != "" {
				blocks = append(blocks, *current)
			}
		}
		current = nil
		text.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if matches := timestampRegex.FindStringSubmatch(trimmed); matches != nil {
			flush()
			start, errS := ParseTimestamp(matches[1])
			end, errE := ParseTimestamp(matches[2])
			if errS != nil || errE != nil {
				continue
			}
			current = &Block{Index: len(blocks) + 1, Start: start, End: end}
			continue
		}
		if current == nil {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		// A bare number directly after a blank line is the next block's
		// index line; text lines that happen to be numeric only occur
		// mid-block and are kept.
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(trimmed)
	}
	flush()
	return blocks
}
