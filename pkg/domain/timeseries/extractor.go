package timeseries

import (
	"log/slog"
	"sort"
	"time"
)

// ExtractHeartRateSeries walks every record of src and collects one Sample per
// record that carries both a valid timestamp field and a positive numeric
// heart_rate field. Records missing either are dropped silently; fields with the
// right name but the wrong type are ignored with a warning. Returns
// ErrMissingData when nothing usable was found. The result is sorted ascending
// by timestamp with a stable sort, so records sharing a timestamp keep their
// original order.
func ExtractHeartRateSeries(src RecordSource, logger *slog.Logger) ([]Sample, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var samples []Sample

	for _, record := range src.Records() {
		var timestamp time.Time
		var heartRate float64
		var haveTS, haveHR bool

		for _, field := range record.Fields() {
			switch field.Name {
			case "timestamp":
				ts, ok := field.Value.(time.Time)
				if !ok || ts.IsZero() {
					logger.Warn("ignoring invalid timestamp field", "value", field.Value)
					continue
				}
				timestamp = ts
				haveTS = true

			case "heart_rate":
				hr, ok := numericValue(field.Value)
				if !ok || hr <= 0 {
					logger.Warn("ignoring invalid heart rate field", "value", field.Value)
					continue
				}
				heartRate = hr
				haveHR = true
			}
		}

		if haveTS && haveHR {
			samples = append(samples, Sample{Timestamp: timestamp, HeartRate: heartRate})
		}
	}

	if len(samples) == 0 {
		return nil, ErrMissingData
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})

	return samples, nil
}

// numericValue widens any integer or float field value to float64.
func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
