// Package account holds the checking-account domain: placeholder account
// generation, the Terms & Conditions document, and the direct (non-dialogue)
// account opening path.
package account

import (
	"math/rand"
	"strings"
	"time"

	"github.com/gowrivallaban/account-open-agenticAI/validate"
)

// AccountType is the only product this service opens.
const AccountType = "Checking"

// CreatedMessage is the success message returned with a new account.
const CreatedMessage = "Account created successfully!"

// Account is an ephemeral placeholder account. It exists only in the
// response that announces it; nothing is persisted.
type Account struct {
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
	AccountType   string `json:"accountType"`
	CustomerName  string `json:"customerName"`
	Message       string `json:"message"`
}

// New mints an account for the named customer with random 10-digit account
// and 9-digit routing numbers. These are display placeholders, not
// credentials, so math/rand is sufficient.
func New(firstName, lastName string) Account {
	return Account{
		AccountNumber: randomDigits(10),
		RoutingNumber: randomDigits(9),
		AccountType:   AccountType,
		CustomerName:  strings.TrimSpace(firstName + " " + lastName),
		Message:       CreatedMessage,
	}
}

func randomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// OpenRequest carries all ten application fields plus the consent flag for
// the direct account-creation operation.
type OpenRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"dateOfBirth"`
	SSN           string `json:"ssn"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

// FieldError reports the first field that failed validation.
type FieldError struct {
	Field   validate.Field
	Message string
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// Open validates every field with the same rules the dialogue path uses and,
// on success, returns a freshly generated account. Fields are checked in
// collection order and the first failure aborts; no partial account is
// created. A missing consent flag is rejected before any account exists.
func Open(req OpenRequest) (*Account, error) {
	return openAt(req, time.Now())
}

func openAt(req OpenRequest, today time.Time) (*Account, error) {
	values := map[validate.Field]string{
		validate.FieldFirstName:   req.FirstName,
		validate.FieldLastName:    req.LastName,
		validate.FieldEmail:       req.Email,
		validate.FieldPhone:       req.Phone,
		validate.FieldDateOfBirth: req.DateOfBirth,
		validate.FieldSSN:         req.SSN,
		validate.FieldStreet:      req.Street,
		validate.FieldCity:        req.City,
		validate.FieldState:       req.State,
		validate.FieldZip:         req.Zip,
	}

	for _, field := range validate.Fields() {
		if res := validate.CheckAt(field, values[field], today); !res.Valid {
			return nil, &FieldError{Field: field, Message: res.Message}
		}
	}

	if !req.AgreedToTerms {
		return nil, &FieldError{
			Field:   "agreedToTerms",
			Message: "You must agree to the Terms & Conditions to open an account.",
		}
	}

	acct := New(req.FirstName, req.LastName)
	return &acct, nil
}
