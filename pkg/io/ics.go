package io

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// PropPosition carries the lane of an exported event so it survives a
// round trip through a calendar.
const PropPosition = "X-TIMELINE-POSITION"

const icsProdID = "-//matzehuels//timeline//EN"

// uidNamespace scopes deterministic event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/timeline"))

// ReadICS decodes one record per VEVENT. SUMMARY becomes the name and the
// calendar day of DTSTART the date. Events missing either are skipped.
func ReadICS(r io.Reader, opts ...Option) ([]timeline.Record, error) {
	o := newOptions(opts)
	dec := ical.NewDecoder(r)

	var records []timeline.Record
	calendars := 0
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse iCalendar")
		}
		calendars++

		for _, ev := range cal.Events() {
			summary, _ := ev.Props.Text(ical.PropSummary)
			summary = strings.TrimSpace(summary)
			start := ev.Props.Get(ical.PropDateTimeStart)
			if summary == "" || start == nil {
				uid, _ := ev.Props.Text(ical.PropUID)
				o.logger.Debug("skipping event without summary or start", "uid", uid)
				continue
			}
			t, err := start.DateTime(time.UTC)
			if err != nil {
				o.logger.Warn("skipping event with unreadable start", "summary", summary, "err", err)
				continue
			}
			y, m, d := t.Date()
			lane, _ := ev.Props.Text(PropPosition)
			records = append(records, timeline.Record{
				Name: summary,
				Date: timeline.FormatDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)),
				Lane: lane,
			})
		}
	}
	if calendars == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no VCALENDAR found")
	}
	return records, nil
}

// WriteICS encodes records as all-day events in one calendar. Records
// with unparseable dates are rejected. UIDs are derived from name and
// date, so re-exporting the same events yields the same UIDs.
func WriteICS(w io.Writer, records []timeline.Record) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProdID)

	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", icsProdID)
		return err
	}

	stamp := time.Now().UTC().Truncate(time.Second)
	for i, r := range records {
		date, err := timeline.ParseDate(r.Date)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, eventUID(r.Name, date))
		ev.Props.SetText(ical.PropSummary, r.Name)
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(date)
		ev.Props.Set(start)

		if lane, ok := timeline.ParseLane(r.Lane); ok {
			ev.Props.SetText(PropPosition, lane.String())
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode iCalendar")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func eventUID(name string, date time.Time) string {
	return uuid.NewSHA1(uidNamespace, []byte(name+"|"+timeline.FormatDate(date))).String()
}
