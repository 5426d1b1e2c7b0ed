package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// =============================================================================
// Publication Date Normalization
// =============================================================================

// pubDateLayouts covers the timestamp formats the source sites emit.
var pubDateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",     // vnexpress.net, dantri
	"Mon, 02 Jan 06 15:04:05 -0700",       // thanhnien.vn
	"2006-01-02 15:04:05",                 // nhandan.vn (no offset)
	"Mon, 02 Jan 2006 15:04:05 GMT-0700", // tuoitre.vn
}

// gmtOffsetPattern matches trailing "GMT+7" style suffixes that none of the
// fixed layouts accept.
var gmtOffsetPattern = regexp.MustCompile(`^(.*) GMT([+-]\d+)$`)

// ParsePubDate parses a raw publication timestamp into UTC. It tries each
// known layout in order, then falls back to stripping a "GMT±N" suffix and
// applying the offset as a whole-hour shift. Fractional-hour offsets are
// not supported.
func ParsePubDate(raw string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	if m := gmtOffsetPattern.FindStringSubmatch(raw); m != nil {
		if t, err := time.Parse("Mon, 02 Jan 2006 15:04:05", m[1]); err == nil {
			hours, convErr := strconv.Atoi(m[2])
			if convErr == nil {
				return t.Add(time.Duration(hours) * time.Hour).UTC(), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("unparseable pubDate: %q", raw)
}

// DayBucket returns the UTC calendar date key ("2006-01-02") for t.
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekBucket returns the Monday of the ISO week containing t, as a UTC
// calendar date key. Keys sort chronologically as strings.
func WeekBucket(t time.Time) string {
	t = t.UTC()
	// time.Weekday puts Sunday at 0; shift so Monday is the week start.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return monday.Format("2006-01-02")
}
