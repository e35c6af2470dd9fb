package entity

// Weekdays lists the only accepted availability values, in calendar order.
// Matching is exact and case-sensitive.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var weekdaySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Weekdays))
	for _, day := range Weekdays {
		set[day] = struct{}{}
	}
	return set
}()

func IsWeekday(day string) bool {
	_, ok := weekdaySet[day]
	return ok
}

// ValidateAvailability reports whether every day is a weekday name and
// returns the offending values, deduplicated, in the order first seen.
func ValidateAvailability(days []string) (bool, []string) {
	var invalid []string
	seen := make(map[string]struct{})
	for _, day := range days {
		if IsWeekday(day) {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		invalid = append(invalid, day)
	}
	return len(invalid) == 0, invalid
}
