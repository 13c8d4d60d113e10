package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"feedbackbot/internal/survey"
)

// TimestampLayout is the format of the Timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// CSVSink appends one row per completed response to a CSV file.
type CSVSink struct {
	Path string
	// Clock stamps responses that carry no submission time.
	Clock Clock
}

// NewCSVSink returns a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Location reports the output file.
func (s *CSVSink) Location() string {
	return s.Path
}

// Save appends the response, writing the header first when the file is empty.
// An exclusive lock on "<path>.lock" serializes writers across processes.
func (s *CSVSink) Save(ctx context.Context, response survey.Response) error {
	if s == nil || s.Path == "" {
		return errors.New("store: csv path is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.Path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	file, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.Path, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("stat %s: %w", s.Path, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(csvHeader(response)); err != nil {
			_ = file.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write(csvRow(response, s.timestamp(response))); err != nil {
		_ = file.Close()
		return fmt.Errorf("write row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush %s: %w", s.Path, err)
	}
	return file.Close()
}

func (s *CSVSink) timestamp(response survey.Response) time.Time {
	if !response.SubmittedAt.IsZero() {
		return response.SubmittedAt
	}
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

func csvHeader(response survey.Response) []string {
	header := []string{"Timestamp"}
	if response.Respondent != "" {
		header = append(header, "Respondent")
	}
	for _, answer := range response.Answers {
		header = append(header, answer.Question)
	}
	return header
}

func csvRow(response survey.Response, at time.Time) []string {
	row := []string{at.Format(TimestampLayout)}
	if response.Respondent != "" {
		row = append(row, response.Respondent)
	}
	for _, answer := range response.Answers {
		row = append(row, answer.Value)
	}
	return row
}
