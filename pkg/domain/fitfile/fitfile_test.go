package fitfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
)

// encodeActivity builds a minimal FIT activity: file_id, one record per heart
// rate at one-second spacing, and a session summary.
func encodeActivity(t *testing.T, start time.Time, heartRates []uint8, withSession bool) []byte {
	t.Helper()

	fit := &proto.FIT{}

	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(start)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))

	for i, hr := range heartRates {
		rec := mesgdef.NewRecord(nil).
			SetTimestamp(start.Add(time.Duration(i) * time.Second)).
			SetHeartRate(hr)
		fit.Messages = append(fit.Messages, rec.ToMesg(nil))
	}

	if withSession {
		end := start.Add(time.Duration(len(heartRates)) * time.Second)
		session := mesgdef.NewSession(nil).
			SetTimestamp(end).
			SetStartTime(start).
			SetSport(typedef.SportRunning).
			SetTotalElapsedTime(uint32(len(heartRates) * 1000)). // milliseconds
			SetAvgHeartRate(121).
			SetMaxHeartRate(135).
			SetTotalCalories(42)
		fit.Messages = append(fit.Messages, session.ToMesg(nil))
	}

	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(fit); err != nil {
		t.Fatalf("failed to encode test FIT data: %v", err)
	}
	return buf.Bytes()
}

func TestParse_RecordsAndMetadata(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	data := encodeActivity(t, start, []uint8{118, 120, 122}, true)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := len(f.Records()); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}

	// Each record exposes timestamp and heart_rate by name.
	fields := f.Records()[0].Fields()
	var sawTS, sawHR bool
	for _, field := range fields {
		switch field.Name {
		case "timestamp":
			ts, ok := field.Value.(time.Time)
			if !ok || !ts.Equal(start) {
				t.Errorf("bad timestamp field: %v", field.Value)
			}
			sawTS = true
		case "heart_rate":
			hr, ok := field.Value.(float64)
			if !ok || hr != 118 {
				t.Errorf("bad heart rate field: %v", field.Value)
			}
			sawHR = true
		}
	}
	if !sawTS || !sawHR {
		t.Errorf("record missing expected fields: %+v", fields)
	}

	meta := f.Metadata()
	if !meta.StartTime.Equal(start) {
		t.Errorf("expected start %v, got %v", start, meta.StartTime)
	}
	if meta.Sport != "Running" {
		t.Errorf("expected sport Running, got %q", meta.Sport)
	}
	if meta.DurationSeconds != 3 {
		t.Errorf("expected 3s duration, got %v", meta.DurationSeconds)
	}
	if meta.AvgHeartRate != 121 || meta.MaxHeartRate != 135 {
		t.Errorf("session heart rates wrong: %+v", meta)
	}
	if meta.DeviceCalories != 42 {
		t.Errorf("expected device calories 42, got %v", meta.DeviceCalories)
	}
}

func TestParse_NoSessionFallsBackToRecords(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	data := encodeActivity(t, start, []uint8{110, 112, 114, 116}, false)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	meta := f.Metadata()
	if !meta.StartTime.Equal(start) {
		t.Errorf("expected start backfilled from file_id/records, got %v", meta.StartTime)
	}
	if meta.Sport != "Unknown" {
		t.Errorf("expected Unknown sport, got %q", meta.Sport)
	}
	if meta.DurationSeconds != 3 {
		t.Errorf("expected 3s duration from record span, got %v", meta.DurationSeconds)
	}
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := Parse([]byte("not a fit file")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	data := encodeActivity(t, start, []uint8{120, 125}, true)

	path := filepath.Join(t.TempDir(), "activity.fit")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Metadata().FilePath != path {
		t.Errorf("expected file path recorded, got %q", f.Metadata().FilePath)
	}
	if f.Metadata().FileSizeBytes != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), f.Metadata().FileSizeBytes)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fit"))

	var ferr *InvalidFileError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *InvalidFileError, got %v", err)
	}
}

func TestFormatSportName(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"running", true, "Running"},
		{"trail_running", true, "Trail Running"},
		{"cross_country_skiing", true, "Cross Country Skiing"},
		{"", true, "Unknown"},
		{"whatever", false, "Unknown"},
	}

	for _, tc := range tests {
		if got := formatSportName(tc.in, tc.valid); got != tc.want {
			t.Errorf("formatSportName(%q, %v) = %q, want %q", tc.in, tc.valid, got, tc.want)
		}
	}
}
