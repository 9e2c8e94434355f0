// Package fitfile adapts FIT activity files to the record-source contract of the
// timeseries package and extracts session metadata for file management.
package fitfile

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/fitburn/fitburn/pkg/domain/timeseries"
)

// InvalidFileError wraps any failure to open or decode a FIT file. It is fatal
// for that file only; batch callers move on to the next one.
type InvalidFileError struct {
	Path string
	Err  error
}

func (e *InvalidFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid FIT data: %v", e.Err)
	}
	return fmt.Sprintf("invalid FIT file %s: %v", e.Path, e.Err)
}

func (e *InvalidFileError) Unwrap() error { return e.Err }

// File is one decoded FIT activity. It satisfies timeseries.RecordSource.
type File struct {
	path    string
	records []timeseries.Record
	meta    Metadata
}

// Open reads and decodes the FIT file at path.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InvalidFileError{Path: path, Err: err}
	}

	f, err := Parse(data)
	if err != nil {
		return nil, &InvalidFileError{Path: path, Err: err}
	}
	f.path = path
	f.meta.FilePath = path
	f.meta.FileSizeBytes = int64(len(data))
	return f, nil
}

// Parse decodes FIT data from memory.
//
// FIT message order is FileId -> DeviceInfo -> Records -> Lap -> Session, so
// record messages are collected first and session summaries fill the metadata
// afterwards.
func Parse(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	fitDec := decoder.New(bytes.NewReader(data))

	f := &File{}
	var recordTimes []time.Time

	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}

		for i := range fitData.Messages {
			msg := &fitData.Messages[i]
			switch msg.Num {
			case typedef.MesgNumFileId:
				fileId := mesgdef.NewFileId(msg)
				if f.meta.StartTime.IsZero() && !fileId.TimeCreated.IsZero() {
					f.meta.StartTime = fileId.TimeCreated.UTC()
				}

			case typedef.MesgNumRecord:
				recordMsg := mesgdef.NewRecord(msg)
				rec := newRecord(recordMsg)
				if rec != nil {
					f.records = append(f.records, rec)
					if !recordMsg.Timestamp.IsZero() {
						recordTimes = append(recordTimes, recordMsg.Timestamp.UTC())
					}
				}

			case typedef.MesgNumSession:
				f.meta.applySession(mesgdef.NewSession(msg))
			}
		}
	}

	f.meta.fillFromRecordTimes(recordTimes)

	return f, nil
}

// Records implements timeseries.RecordSource.
func (f *File) Records() []timeseries.Record { return f.records }

// Metadata returns the session metadata extracted during decoding.
func (f *File) Metadata() Metadata { return f.meta }

// record is one decoded record message exposed as named fields.
type record struct {
	fields []timeseries.Field
}

func (r *record) Fields() []timeseries.Field { return r.fields }

// newRecord converts a FIT record message into the generic field form. 0xFF is
// the FIT invalid sentinel for heart rate.
func newRecord(msg *mesgdef.Record) timeseries.Record {
	if msg.Timestamp.IsZero() {
		return nil
	}

	fields := []timeseries.Field{
		{Name: "timestamp", Value: msg.Timestamp.UTC()},
	}
	if msg.HeartRate != 0xFF {
		fields = append(fields, timeseries.Field{Name: "heart_rate", Value: float64(msg.HeartRate)})
	}

	return &record{fields: fields}
}
