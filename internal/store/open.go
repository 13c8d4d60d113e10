package store

import (
	"context"
	"fmt"
	"strings"

	"feedbackbot/internal/config"
	"feedbackbot/internal/survey"
)

// Sink is a saver bound to an output location.
type Sink interface {
	survey.Saver
	Location() string
	Close() error
}

// Close is a no-op; every Save opens and closes the file.
func (s *CSVSink) Close() error {
	return nil
}

// Open builds the sink selected by the output configuration.
func Open(ctx context.Context, cfg config.OutputConfig) (Sink, error) {
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = config.FormatCSV
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = config.DefaultOutputPath(format)
	}

	var open func(context.Context, string) (*DBSink, error)
	switch format {
	case config.FormatCSV:
		return NewCSVSink(path), nil
	case config.FormatDuckDB:
		open = OpenDuckDB
	case config.FormatSQLite:
		open = OpenSQLite
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}
	sink, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	return sink, nil
}
