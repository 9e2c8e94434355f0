package processor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fitburn/fitburn/pkg/domain/fitfile"
)

// ErrNoStartTime reports that a file carries no start time to rename by.
var ErrNoStartTime = errors.New("no start time in FIT metadata")

// RenameByMetadata renames a FIT file to
// YYYY-MM-DD_HHMM_<Activity>_<duration>.fit based on its metadata, appending a
// numeric suffix on name collisions. Returns the resulting path, which is the
// original path when the file already has the desired name.
func RenameByMetadata(path string, meta fitfile.Metadata, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if meta.StartTime.IsZero() {
		return "", fmt.Errorf("%s: %w", path, ErrNoStartTime)
	}

	dir := filepath.Dir(path)
	base := fmt.Sprintf("%s_%s_%s",
		meta.StartTime.Format("2006-01-02"),
		meta.StartTime.Format("1504"),
		meta.Sport,
	)
	if dur := formatDuration(meta.DurationSeconds); dur != "" {
		base += "_" + dur
	}

	newPath := filepath.Join(dir, base+".fit")

	counter := 1
	for newPath != path {
		if _, err := os.Stat(newPath); os.IsNotExist(err) {
			break
		}
		newPath = filepath.Join(dir, fmt.Sprintf("%s_%d.fit", base, counter))
		counter++
	}

	if newPath == path {
		logger.Info("file already has the desired name", "file", path)
		return path, nil
	}

	if err := os.Rename(path, newPath); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}

	logger.Info("renamed file", "from", path, "to", newPath)
	return newPath, nil
}

// formatDuration renders a duration in seconds as "1h5m", "45m" or "0m".
func formatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60

	out := ""
	if hours > 0 {
		out += fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 || (hours == 0 && seconds > 0) {
		out += fmt.Sprintf("%dm", minutes)
	}
	if out == "" {
		out = "0m"
	}
	return out
}
