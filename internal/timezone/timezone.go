package timezone

import "time"

// DefaultTimezone is where renters and owners live; calendar dates are
// interpreted in it.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then to a fixed UTC-3 zone when the
// host has no tzdata.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*60*60)
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn returns today's calendar date in tz, at midnight UTC so it compares
// cleanly with dates read from postgres DATE columns.
func TodayIn(tz string) time.Time {
	y, m, d := NowIn(tz).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
