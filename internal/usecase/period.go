package usecase

import (
	"time"

	"salespulse/internal/domain"
)

// ResolvePeriod maps a period selector to a concrete inclusive date
// range anchored to now. Today and yesterday resolve to exact-day
// matches; every other selector is an interval test. For the custom
// selector a nil bound stays nil: the caller sees an explicitly open
// range instead of a silent match-everything filter.
func ResolvePeriod(period domain.Period, now time.Time, customStart, customEnd *time.Time) domain.DateRange {
	today := startOfDay(now)

	switch period {
	case domain.PeriodToday:
		return exactDay(today)

	case domain.PeriodYesterday:
		return exactDay(today.AddDate(0, 0, -1))

	case domain.PeriodLast7:
		// 6 days back plus today
		return interval(today.AddDate(0, 0, -6), endOfDay(now))

	case domain.PeriodLast30:
		return interval(today.AddDate(0, 0, -29), endOfDay(now))

	case domain.PeriodWeek:
		return interval(startOfWeek(now), now)

	case domain.PeriodMonth:
		return interval(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now)

	case domain.PeriodYear:
		return interval(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now)

	case domain.PeriodCustom:
		var r domain.DateRange
		if customStart != nil {
			s := startOfDay(*customStart)
			r.Start = &s
		}
		if customEnd != nil {
			e := endOfDay(*customEnd)
			r.End = &e
		}
		return r

	default:
		return interval(today, now)
	}
}

func exactDay(day time.Time) domain.DateRange {
	return domain.DateRange{Start: &day, ExactDay: true}
}

func interval(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: &start, End: &end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// startOfWeek truncates to the Monday of the current ISO week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
