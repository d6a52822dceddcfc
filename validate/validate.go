// Package validate implements the pure per-field validators for the checking
// account application. Every validator is total: any input yields a
// structured Result, never an error.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Field names one of the ten application fields. The string values are the
// canonical wire names the reasoning engine uses in tool arguments.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldDateOfBirth Field = "dateOfBirth"
	FieldSSN         Field = "ssn"
	FieldStreet      Field = "street"
	FieldCity        Field = "city"
	FieldState       Field = "state"
	FieldZip         Field = "zip"
)

// Fields returns the ten fields in the order the dialogue collects them.
func Fields() []Field {
	return []Field{
		FieldFirstName, FieldLastName, FieldEmail, FieldPhone,
		FieldDateOfBirth, FieldSSN, FieldStreet, FieldCity,
		FieldState, FieldZip,
	}
}

// Result is the outcome of validating a single field value.
// CleanedValue holds the normalized form when Valid is true.
type Result struct {
	Valid        bool   `json:"valid"`
	Message      string `json:"message"`
	CleanedValue string `json:"cleaned_value,omitempty"`
}

func valid(cleaned string) Result {
	return Result{Valid: true, Message: "Valid", CleanedValue: cleaned}
}

func invalid(message string) Result {
	return Result{Valid: false, Message: message}
}

// checker validates one trimmed field value. The reference date is only
// consulted by the date-of-birth checker.
type checker func(value string, today time.Time) Result

var checkers = map[Field]checker{
	FieldFirstName:   func(v string, _ time.Time) Result { return checkName(v, "First name") },
	FieldLastName:    func(v string, _ time.Time) Result { return checkName(v, "Last name") },
	FieldEmail:       func(v string, _ time.Time) Result { return checkEmail(v) },
	FieldPhone:       func(v string, _ time.Time) Result { return checkPhone(v) },
	FieldDateOfBirth: checkDateOfBirth,
	FieldSSN:         func(v string, _ time.Time) Result { return checkSSN(v) },
	FieldStreet:      func(v string, _ time.Time) Result { return checkStreet(v) },
	FieldCity:        func(v string, _ time.Time) Result { return checkCity(v) },
	FieldState:       func(v string, _ time.Time) Result { return checkState(v) },
	FieldZip:         func(v string, _ time.Time) Result { return checkZip(v) },
}

// Check validates a raw field value against the current date.
func Check(field Field, value string) Result {
	return CheckAt(field, value, time.Now())
}

// CheckAt validates a raw field value, computing age relative to today.
// Unknown field names yield an invalid Result rather than an error.
func CheckAt(field Field, value string, today time.Time) Result {
	fn, ok := checkers[field]
	if !ok {
		return invalid(fmt.Sprintf("Unknown field: %s", field))
	}
	return fn(strings.TrimSpace(value), today)
}

var (
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit = regexp.MustCompile(`\D`)
	zipRe    = regexp.MustCompile(`^\d{5}$`)
	dobSlash = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dobISO   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func checkName(v, label string) Result {
	if v == "" {
		return invalid(label + " is required.")
	}
	if n := utf8.RuneCountInString(v); n < 2 || n > 50 {
		return invalid(label + " must be 2–50 characters.")
	}
	if !nameRe.MatchString(v) {
		return invalid(label + " can only contain letters, spaces, hyphens, and apostrophes.")
	}
	return valid(v)
}

func checkEmail(v string) Result {
	if v == "" {
		return invalid("Email is required.")
	}
	if !emailRe.MatchString(v) {
		return invalid("Please enter a valid email address.")
	}
	return valid(v)
}

func checkPhone(v string) Result {
	digits := nonDigit.ReplaceAllString(v, "")
	if len(digits) != 10 {
		return invalid("Phone number must be exactly 10 digits.")
	}
	return valid(digits)
}

func checkDateOfBirth(v string, today time.Time) Result {
	if v == "" {
		return invalid("Date of birth is required.")
	}

	var dob time.Time
	var err error
	switch {
	case dobSlash.MatchString(v):
		dob, err = time.Parse("01/02/2006", v)
		if err != nil {
			return invalid("Invalid date. Use MM/DD/YYYY format.")
		}
	case dobISO.MatchString(v):
		dob, err = time.Parse("2006-01-02", v)
		if err != nil {
			return invalid("Invalid date. Use YYYY-MM-DD format.")
		}
	default:
		return invalid("Please enter date in MM/DD/YYYY format.")
	}

	age := ageAt(dob, today)
	if age < 18 {
		return invalid("You must be at least 18 years old.")
	}
	if age > 120 {
		return invalid("Please enter a valid date of birth.")
	}
	return valid(v)
}

// ageAt computes whole years between dob and today, adjusted down by one
// when the birthday has not yet occurred this year.
func ageAt(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func checkSSN(v string) Result {
	digits := nonDigit.ReplaceAllString(v, "")
	if len(digits) != 9 {
		return invalid("SSN must be exactly 9 digits.")
	}
	if strings.HasPrefix(digits, "000") || strings.HasPrefix(digits, "666") || digits[0] == '9' {
		return invalid("Please enter a valid SSN.")
	}
	return valid(digits)
}

func checkStreet(v string) Result {
	if n := utf8.RuneCountInString(v); n < 5 || n > 100 {
		return invalid("Street address must be 5–100 characters.")
	}
	return valid(v)
}

func checkCity(v string) Result {
	if !nameRe.MatchString(v) {
		return invalid("City can only contain letters and spaces.")
	}
	return valid(v)
}

func checkState(v string) Result {
	code := strings.ToUpper(v)
	if !stateCodes[code] {
		return invalid("Please enter a valid 2-letter US state code (e.g., CA, NY, TX).")
	}
	return valid(code)
}

func checkZip(v string) Result {
	if !zipRe.MatchString(v) {
		return invalid("ZIP code must be exactly 5 digits.")
	}
	return valid(v)
}

// stateCodes holds the 50 US state codes plus DC.
var stateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
	"DC": true,
}
