package io

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Format identifies an event file encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatICS   Format = "ics"
	FormatVCard Format = "vcf"
)

var extFormats = map[string]Format{
	".csv":   FormatCSV,
	".json":  FormatJSON,
	".ics":   FormatICS,
	".ical":  FormatICS,
	".vcf":   FormatVCard,
	".vcard": FormatVCard,
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported events file %q (use .csv, .json, .ics, .vcf)", filepath.Base(path))
}

// Option configures readers.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger reports skipped entries at debug level and malformed ones
// as warnings.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

func newOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Read decodes records in format from r.
func Read(r io.Reader, format Format, opts ...Option) ([]timeline.Record, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatICS:
		return ReadICS(r, opts...)
	case FormatVCard:
		return ReadVCard(r, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown events format %q", format)
	}
}

// Import reads the events file at path, choosing the decoder by
// extension.
func Import(path string, opts ...Option) ([]timeline.Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "events file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	records, err := Read(f, format, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidFormat), err, "read %s", filepath.Base(path))
	}
	return records, nil
}

// Write encodes records in format to w.
func Write(w io.Writer, records []timeline.Record, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatICS:
		return WriteICS(w, records)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot export events as %q", format)
	}
}

// Export writes records to path, choosing the encoder by extension.
func Export(path string, records []timeline.Record) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(f, records, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Clean drops records whose name or date is blank, the rows an editor
// leaves behind. Other records pass through untouched.
func Clean(records []timeline.Record) []timeline.Record {
	out := make([]timeline.Record, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Date) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
