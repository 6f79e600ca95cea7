// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"

	"claimcenter_backend/internals/helpers/apperror"
)

const (
	DefaultTimezone = "Asia/Bangkok"
	DayLayout       = "2006-01-02"
)

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation is the business timezone from APP_TIMEZONE.
// Fallback: Asia/Bangkok, lalu UTC.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = DefaultTimezone
		}
		if loc, err := time.LoadLocation(name); err == nil {
			appLoc = loc
			return
		}
		if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
			appLoc = loc
			return
		}
		appLoc = time.UTC
	})
	return appLoc
}

// ParseDay parses YYYY-MM-DD as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// DayRange turns inclusive calendar days into [from, to): from is start
// at 00:00, to is end+1 day at 00:00. Empty inputs leave that bound nil.
func DayRange(start, end string, loc *time.Location) (from, to *time.Time, err error) {
	if s := strings.TrimSpace(start); s != "" {
		t, e := ParseDay(s, loc)
		if e != nil {
			return nil, nil, apperror.ValidationFields(map[string][]string{"start_date": {"must be YYYY-MM-DD"}})
		}
		from = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, e := ParseDay(s, loc)
		if e != nil {
			return nil, nil, apperror.ValidationFields(map[string][]string{"end_date": {"must be YYYY-MM-DD"}})
		}
		next := t.AddDate(0, 0, 1)
		to = &next
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, apperror.ValidationFields(map[string][]string{"end_date": {"must not be before start_date"}})
	}
	return from, to, nil
}
