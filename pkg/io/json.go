package io

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// ReadJSON decodes records from either a JSON array of records or an
// object whose "events" key holds that array (the export format).
//
//	[{"name": "Kickoff", "date": "01.03.2024", "position": "above"}]
func ReadJSON(r io.Reader) ([]timeline.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read JSON")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty JSON input")
	}

	var records []timeline.Record
	switch data[0] {
	case '[':
		err = json.Unmarshal(data, &records)
	case '{':
		var wrapper struct {
			Events *[]timeline.Record `json:"events"`
		}
		if err = json.Unmarshal(data, &wrapper); err == nil {
			if wrapper.Events == nil {
				return nil, errors.New(errors.ErrCodeInvalidSchema, `JSON object has no "events" array`)
			}
			records = *wrapper.Events
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "JSON events must be an array or an object")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return records, nil
}

// WriteJSON encodes records as an indented JSON array.
func WriteJSON(w io.Writer, records []timeline.Record) error {
	if records == nil {
		records = []timeline.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode JSON")
	}
	return nil
}
