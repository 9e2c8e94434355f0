package fitfile

import (
	"strings"
	"time"

	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Metadata holds the summary information of one FIT activity, used for
// reporting and metadata-based renaming. Heart-rate and calorie fields are the
// device's own session totals when present, zero otherwise.
type Metadata struct {
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Sport           string    `json:"sport"`
	SubSport        string    `json:"sub_sport"`
	AvgHeartRate    float64   `json:"avg_heart_rate,omitempty"`
	MaxHeartRate    float64   `json:"max_heart_rate,omitempty"`
	DeviceCalories  float64   `json:"device_calories,omitempty"`
	FilePath        string    `json:"file_path,omitempty"`
	FileSizeBytes   int64     `json:"file_size_bytes,omitempty"`
}

// applySession fills metadata from the first session message. FIT invalid
// sentinels are 0xFF for heart rates and 0xFFFF for calories.
func (m *Metadata) applySession(session *mesgdef.Session) {
	if m.Sport != "" {
		return // keep the first session, files with several are rare
	}

	if !session.StartTime.IsZero() {
		m.StartTime = session.StartTime.UTC()
	}
	m.DurationSeconds = float64(session.TotalElapsedTime) / 1000

	m.Sport = formatSportName(session.Sport.String(), session.Sport != typedef.SportInvalid)
	m.SubSport = formatSportName(session.SubSport.String(), session.SubSport != typedef.SubSportInvalid)

	if session.AvgHeartRate != 0xFF {
		m.AvgHeartRate = float64(session.AvgHeartRate)
	}
	if session.MaxHeartRate != 0xFF {
		m.MaxHeartRate = float64(session.MaxHeartRate)
	}
	if session.TotalCalories != 0xFFFF {
		m.DeviceCalories = float64(session.TotalCalories)
	}
}

// fillFromRecordTimes backfills start time and duration from record timestamps
// when the file carries no usable session summary. times must be in file order.
func (m *Metadata) fillFromRecordTimes(times []time.Time) {
	if len(times) == 0 {
		return
	}

	first, last := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	if m.StartTime.IsZero() {
		m.StartTime = first
	}
	if m.DurationSeconds == 0 && len(times) > 1 {
		m.DurationSeconds = last.Sub(first).Seconds()
	}
	if m.Sport == "" {
		m.Sport = "Unknown"
	}
	if m.SubSport == "" {
		m.SubSport = "Unknown"
	}
}

var sportTitle = cases.Title(language.English)

// formatSportName turns a FIT sport identifier like "trail_running" into
// "Trail Running".
func formatSportName(name string, valid bool) string {
	if !valid || name == "" {
		return "Unknown"
	}
	return sportTitle.String(strings.ReplaceAll(name, "_", " "))
}
