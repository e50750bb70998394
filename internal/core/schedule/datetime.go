package schedule

import (
	"errors"
	"regexp"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	localDateTime  = "2006-01-02T15:04"
	localDateTimeS = "2006-01-02T15:04:05"
	monthKeyLayout = "2006-01"
)

var ErrInvalidDateTime = errors.New("invalid date or time")

// legacyStampRe matches the bare local form persisted by older clients:
// a datetime with no offset marker. Such values must be reinterpreted as
// wall-clock local time, never as UTC.
var legacyStampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)

// LocalToCanonical composes a calendar date and an optional clock time,
// interprets them in loc and returns the canonical UTC instant. An empty
// clock defaults to start-of-day; the caller is expected to record
// hasTime=false in that case.
func LocalToCanonical(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	layout := dateLayout
	composed := date
	if clock != "" {
		layout = localDateTime
		if len(clock) > len(clockLayout) {
			layout = localDateTimeS
		}
		composed = date + "T" + clock
	}
	t, err := time.ParseInLocation(layout, composed, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t.UTC(), nil
}

// CanonicalToLocal renders a canonical instant as a (date, clock) pair in
// loc. The location is the viewer's current one, not the one the task was
// created in: display always follows the viewer.
func CanonicalToLocal(t time.Time, loc *time.Location) (date, clock string) {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return local.Format(dateLayout), local.Format(clockLayout)
}

// ParseStamp parses a persisted or wire reminder value. It accepts the
// canonical RFC3339 form, the legacy bare local datetime, and a bare date.
// Anything else reports false; an unparseable stamp means "no schedule".
func ParseStamp(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range []string{localDateTime, localDateTimeS, dateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// MigrateStamp rewrites a legacy bare local datetime to the canonical
// RFC3339 UTC form and reports whether it changed anything. Canonical and
// unparseable values pass through untouched, so applying it twice is the
// same as applying it once.
func MigrateStamp(s string, loc *time.Location) (string, bool) {
	if !legacyStampRe.MatchString(s) {
		return s, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(localDateTime, s, loc)
	if err != nil {
		return s, false
	}
	return t.UTC().Format(time.RFC3339), true
}
