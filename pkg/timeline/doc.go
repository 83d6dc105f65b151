// Package timeline turns raw event records into a chronologically ordered
// event sequence ready for layout.
//
// # Dates
//
// Dates use the fixed day.month.year pattern (for example "15.03.2024").
// [ParseDate] rejects anything else, including impossible calendar dates
// such as "31.04.2024", with an INVALID_DATE error from pkg/errors.
// [FormatDate] is its inverse.
//
// # Building a Sequence
//
// [Build] validates records, sorts them by date (stable on ties) and
// resolves lanes. Records without an explicit "above"/"below" position get
// one by alternating over the sorted order: even indices go Above, odd
// indices go Below.
//
//	seq, err := timeline.Build([]timeline.Record{
//	    {Name: "Kickoff", Date: "01.01.2024"},
//	    {Name: "Beta", Date: "15.01.2024", Lane: "below"},
//	})
//
// A Sequence is built once per render and discarded afterwards; nothing in
// this package keeps state between calls.
package timeline
