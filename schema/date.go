package schema

import (
	"strings"
	"time"

	"pupils-backend/apperror"
)

const (
	// DateFormat is the wire layout for birth dates (DD-MM-YYYY).
	DateFormat = "02-01-2006"
	// dateInputLayout also accepts an unpadded day or month.
	dateInputLayout = "2-1-2006"

	MinAge = 5
	MaxAge = 20 // не включительно
)

// ParseBirthDate reads a DD-MM-YYYY date as midnight UTC.
func ParseBirthDate(s string) (time.Time, error) {
	return time.Parse(dateInputLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Age is a plain difference of calendar years; birthdays later in the
// current year are not taken into account.
func Age(birth, today time.Time) int {
	return today.Year() - birth.Year()
}

func CheckAge(birth, today time.Time) error {
	age := Age(birth, today)
	if age < MinAge || age >= MaxAge {
		return apperror.AgeOutOfRange()
	}
	return nil
}
