package resample

import (
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/taifexpulse/internal/domain/models"
)

// Session names one of the two disjoint TAIFEX trading windows.
type Session string

const (
	// SessionIntraday keeps time-of-day in [08:45:00, 13:45:00).
	SessionIntraday Session = "intraday"
	// SessionAfterHours keeps [15:00:00, 05:00:00) across midnight, then
	// shifts kept timestamps back 6 hours so the overnight session collapses
	// onto the evening's calendar date.
	SessionAfterHours Session = "afterhours"
)

// ParseSession maps a config string to a Session. Unrecognized values are a
// configuration error and abort the run.
func ParseSession(s string) (Session, error) {
	switch Session(s) {
	case SessionIntraday, SessionAfterHours:
		return Session(s), nil
	default:
		return "", fmt.Errorf("unknown session %q (want intraday or afterhours)", s)
	}
}

// Window boundaries in seconds of day.
const (
	intradayStart   = 8*3600 + 45*60  // 08:45:00
	intradayEnd     = 13*3600 + 45*60 // 13:45:00
	afterHoursStart = 15 * 3600       // 15:00:00
	afterHoursEnd   = 5 * 3600        // 05:00:00 next day
	afterHoursShift = -6 * time.Hour
)

const timestampLayout = "20060102150405"

// ParseTimestamp composes a tick timestamp from the trimmed date and time
// fields of a raw row: 8-digit YYYYMMDD plus the first 6 digits of the time
// field (HHMMSS; sub-second digits are dropped). Rows that do not fit the
// fixed layout are malformed and skipped by the caller.
func ParseTimestamp(txdDt, txdTm string) (time.Time, error) {
	if len(txdDt) != 8 {
		return time.Time{}, fmt.Errorf("txd_dt %q: want 8 digits", txdDt)
	}
	if len(txdTm) < 6 {
		return time.Time{}, fmt.Errorf("txd_tm %q: want at least 6 digits", txdTm)
	}
	ts, err := time.ParseInLocation(timestampLayout, txdDt+txdTm[:6], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return ts, nil
}

// inWindow reports whether a time-of-day (seconds since midnight) falls in
// the session's half-open window. The after-hours window wraps past
// midnight, so membership is the two-clause test s >= start || s < end.
func (s Session) inWindow(secOfDay int) bool {
	if s == SessionAfterHours {
		return secOfDay >= afterHoursStart || secOfDay < afterHoursEnd
	}
	return secOfDay >= intradayStart && secOfDay < intradayEnd
}

// FilterSession sorts ticks ascending by timestamp (stable, so same-second
// ticks keep file order), keeps only those inside the session window, shifts
// after-hours timestamps back 6 hours, and finally restricts to the class's
// item-code allow-list. The input slice is not modified.
func FilterSession(ticks []models.Tick, class models.InstrumentClass, session Session) []models.Tick {
	sorted := append([]models.Tick(nil), ticks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	allowed := make(map[string]struct{})
	for _, code := range class.ItemCodes() {
		allowed[code] = struct{}{}
	}

	out := make([]models.Tick, 0, len(sorted))
	for _, tk := range sorted {
		sec := tk.Timestamp.Hour()*3600 + tk.Timestamp.Minute()*60 + tk.Timestamp.Second()
		if !session.inWindow(sec) {
			continue
		}
		if session == SessionAfterHours {
			tk.Timestamp = tk.Timestamp.Add(afterHoursShift)
		}
		if _, ok := allowed[tk.ItemCode]; !ok {
			continue
		}
		out = append(out, tk)
	}
	return out
}
