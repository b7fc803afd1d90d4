package captions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CueStats summarises an SRT document for reporting.
type CueStats struct {
	Cues int
	// First and Last are the earliest start and latest end, in seconds.
	First float64
	Last  float64
}

// Stats counts cues and timestamp bounds in SRT text.
func Stats(text string) CueStats {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	stats := CueStats{Cues: countCues(text)}
	first, last, found := bounds(text)
	if found {
		stats.First, stats.Last = first, last
	}
	return stats
}

// Validate reports format problems with SRT text. An empty slice means the
// text looks like captions.
func Validate(text string) []string {
	var issues []string
	stats := Stats(text)
	if stats.Cues == 0 {
		return append(issues, "empty_subtitle_file")
	}
	if _, _, found := bounds(strings.ReplaceAll(text, "\r\n", "\n")); !found {
		issues = append(issues, "no_valid_timestamps")
	}
	return issues
}

func countCues(text string) int {
	content := strings.TrimSpace(text)
	if content == "" {
		return 0
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

func bounds(text string) (float64, float64, bool) {
	first := math.Inf(1)
	var last float64
	found := false
	for _, line := range strings.Split(text, "\n") {
		start, end, ok := strings.Cut(line, "-->")
		if !ok {
			continue
		}
		if seconds, err := parseTimestamp(start); err == nil {
			first = min(first, seconds)
			found = true
		}
		if seconds, err := parseTimestamp(end); err == nil {
			last = max(last, seconds)
		}
	}
	if !found {
		return 0, last, false
	}
	return first, last, true
}

func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma before the milliseconds; accept a period too.
	value = strings.ReplaceAll(value, ".", ",")
	clock, msText, ok := strings.Cut(value, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(msText)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatSeconds renders a duration in seconds as H:MM:SS.
func FormatSeconds(seconds float64) string {
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
