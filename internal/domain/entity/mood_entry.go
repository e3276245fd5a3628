package entity

import (
	"strconv"
	"strings"
	"time"
)

// Mood levels run 1 (worst) to 6 (best)
const (
	MoodLevelMin = 1
	MoodLevelMax = 6
)

var moodLabels = [...]string{
	"1_red",
	"2_orange",
	"3_yellow",
	"4_yellow_green",
	"5_light_green",
	"6_green",
}

var moodEmojis = [...]string{"😢", "🙁", "😐", "🙂", "😊", "😄"}

// MoodLabel returns the canonical colour label for a mood level
func MoodLabel(level int) (string, bool) {
	if level < MoodLevelMin || level > MoodLevelMax {
		return "", false
	}
	return moodLabels[level-1], true
}

// MoodLevelFromLabel parses the numeric level back out of a colour label.
// Returns zero for an unknown label.
func MoodLevelFromLabel(label string) int {
	prefix, _, ok := strings.Cut(label, "_")
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(prefix)
	if err != nil || level < MoodLevelMin || level > MoodLevelMax {
		return 0
	}
	return level
}

// MoodEmoji returns a face for dashboards; empty for an unknown level
func MoodEmoji(level int) string {
	if level < MoodLevelMin || level > MoodLevelMax {
		return ""
	}
	return moodEmojis[level-1]
}

// MoodEntry represents one mood log line owned by a patient
type MoodEntry struct {
	PatientID    int       `json:"patient_id"`
	Timestamp    time.Time `json:"timestamp"`
	MoodColor    string    `json:"mood_color"`
	MoodComments string    `json:"mood_comments"`
}

// Level returns the numeric mood level stored in MoodColor
func (m *MoodEntry) Level() int {
	return MoodLevelFromLabel(m.MoodColor)
}
