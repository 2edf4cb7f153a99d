package contract

import "time"

// FieldLayout is the date layout typed into the replay download dialog.
const FieldLayout = "01/02/2006"

// ArtifactLayout is the date layout of replay artifact file names.
const ArtifactLayout = "20060102"

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day and location of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Yesterday returns the calendar day before now's local calendar day.
func Yesterday(now time.Time) time.Time {
	return Truncate(now).AddDate(0, 0, -1)
}

// IsSaturday reports whether day falls on a Saturday.
func IsSaturday(day time.Time) bool {
	return day.Weekday() == time.Saturday
}

// FormatField formats day the way the download dialog expects it.
func FormatField(day time.Time) string {
	return day.Format(FieldLayout)
}

// ParseDate parses a YYYY-MM-DD string into a date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}

	return Truncate(t), nil
}
