package recurrence

import "time"

// Matches reports whether date falls in target. A nil target matches
// every date (unfiltered listing).
func Matches(date time.Time, target *Month) bool {
	if target == nil {
		return true
	}
	return target.Contains(date)
}

// Covers reports whether the schedule manifests in month m: a purchase
// in month M with N installments covers [M, M+N-1], a monthly recurrence
// covers every month from its origin, a fixed entry only its own month.
func Covers(s Schedule, m Month) bool {
	if m.Before(s.First()) {
		return false
	}
	last, bounded := s.Last()
	return !bounded || !m.After(last)
}

// SelectForMonth returns the occurrences of s inside target. With a nil
// target a bounded schedule yields all of its occurrences and an
// open-ended one yields only its origin.
func SelectForMonth(s Schedule, target *Month) []Occurrence {
	if target != nil {
		if !Covers(s, *target) {
			return nil
		}
		return s.In(*target)
	}
	if series, ok := s.(*InstallmentSeries); ok {
		return series.All()
	}
	return []Occurrence{s.Origin()}
}

// Expand applies SelectForMonth to each schedule keeping input order, then
// installment order.
func Expand(schedules []Schedule, target *Month) []Occurrence {
	var out []Occurrence
	for _, s := range schedules {
		out = append(out, SelectForMonth(s, target)...)
	}
	return out
}
