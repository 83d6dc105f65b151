package io

import (
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// vCard date layouts with a year. Year-less dates ("--0315") cannot be
// placed on a timeline and are skipped.
var vcardDateLayouts = []string{
	"2006-01-02",
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"20060102T150405Z",
}

// AnniversarySuffix is appended to a contact's name for ANNIVERSARY
// records.
const AnniversarySuffix = " (anniversary)"

// ReadVCard decodes one record per BDAY and ANNIVERSARY field. The name
// is FN, falling back to N. Cards that fail to decode are skipped with a
// warning so one broken card does not lose the rest of an address book.
func ReadVCard(r io.Reader, opts ...Option) ([]timeline.Record, error) {
	o := newOptions(opts)
	dec := vcard.NewDecoder(r)

	var records []timeline.Record
	cards := 0
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			if cards == 0 {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse vCard")
			}
			o.logger.Warn("skipping malformed vCard", "err", err)
			continue
		}
		cards++

		name := cardName(card)
		if name == "" {
			o.logger.Debug("skipping vCard without a name")
			continue
		}
		for _, f := range []struct {
			field  string
			suffix string
		}{
			{vcard.FieldBirthday, ""},
			{vcard.FieldAnniversary, AnniversarySuffix},
		} {
			value := card.Value(f.field)
			if value == "" {
				continue
			}
			date, ok := parseVCardDate(value)
			if !ok {
				o.logger.Debug("skipping vCard date", "name", name, "field", f.field, "value", value)
				continue
			}
			records = append(records, timeline.Record{Name: name + f.suffix, Date: timeline.FormatDate(date)})
		}
	}
	if cards == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no vCard found")
	}
	return records, nil
}

func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		parts := []string{n.GivenName, n.AdditionalName, n.FamilyName}
		return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	}
	return ""
}

func parseVCardDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range vcardDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return timeline.Day(t), true
		}
	}
	return time.Time{}, false
}
