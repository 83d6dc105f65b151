// Package io reads and writes timeline event records.
//
// # Overview
//
// Events enter the system as raw [timeline.Record] values (name, date
// string, optional position). This package converts between records and
// the file formats users keep their events in:
//
//   - CSV: a header row with name, date and optional position columns
//   - JSON: an array of records, or an export object with an "events" key
//   - iCalendar (.ics): one record per VEVENT (SUMMARY and DTSTART)
//   - vCard (.vcf): one record per BDAY or ANNIVERSARY
//
// Readers return records, not events: date parsing, sorting and lane
// assignment happen in [timeline.Build], so every source gets the same
// validation.
//
// # Import
//
// Use [Import] to read a file chosen by extension, or [Read] with an
// explicit [Format] for any io.Reader:
//
//	records, err := io.Import("events.csv")
//	seq, err := timeline.Build(io.Clean(records))
//
// # Export
//
// [WriteCSV], [WriteJSON] and [WriteICS] write records back out; [Export]
// picks the writer by extension. CSV output always carries the three
// columns, so an exported file re-imports identically.
//
// [timeline.Record]: github.com/matzehuels/timeline/pkg/timeline.Record
// [timeline.Build]: github.com/matzehuels/timeline/pkg/timeline.Build
package io
