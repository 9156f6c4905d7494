package scheduling

// CheckAvailability re-derives whether the provider can take iv: a weekly
// window (or an added exception window) on that local date must fully
// contain it, and no exception on that date may block its start. The
// returned code is empty when iv is bookable.
func CheckAvailability(s *Schedule, iv Interval) string {
	if !s.HasWeeklyAvailability() {
		return CodeNoAvailability
	}

	if !s.Contains(iv) {
		return CodeOutsideAvailability
	}

	if blocked, code := s.StartBlocked(iv); blocked {
		return code
	}

	return ""
}
