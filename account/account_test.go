package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowrivallaban/account-open-agenticAI/validate"
)

var testToday = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func validRequest() OpenRequest {
	return OpenRequest{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "(555) 123-4567",
		DateOfBirth:   "01/01/2000",
		SSN:           "078-05-1120",
		Street:        "123 Main St",
		City:          "San Francisco",
		State:         "ca",
		Zip:           "94105",
		AgreedToTerms: true,
	}
}

func TestNew_NumberShapes(t *testing.T) {
	acct := New("Ada", "Lovelace")

	assert.Len(t, acct.AccountNumber, 10)
	assert.Len(t, acct.RoutingNumber, 9)
	for _, c := range acct.AccountNumber + acct.RoutingNumber {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}
	assert.Equal(t, "Checking", acct.AccountType)
	assert.Equal(t, "Ada Lovelace", acct.CustomerName)
	assert.Equal(t, CreatedMessage, acct.Message)
}

func TestOpen_Success(t *testing.T) {
	acct, err := openAt(validRequest(), testToday)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "Ada Lovelace", acct.CustomerName)
}

func TestOpen_FirstInvalidFieldWins(t *testing.T) {
	req := validRequest()
	req.Email = "not-an-email"
	req.Zip = "bad" // also invalid, but email is checked first

	_, err := openAt(req, testToday)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, validate.FieldEmail, fieldErr.Field)
	assert.Equal(t, "Please enter a valid email address.", fieldErr.Message)
}

func TestOpen_ConsentRequired(t *testing.T) {
	req := validRequest()
	req.AgreedToTerms = false

	acct, err := openAt(req, testToday)
	require.Error(t, err)
	assert.Nil(t, acct)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, validate.Field("agreedToTerms"), fieldErr.Field)
}

func TestOpen_UnderageRejected(t *testing.T) {
	req := validRequest()
	req.DateOfBirth = "01/01/2010"

	_, err := openAt(req, testToday)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, validate.FieldDateOfBirth, fieldErr.Field)
}

func TestTerms_KeyClauses(t *testing.T) {
	assert.Contains(t, Terms, "FDIC INSURANCE")
	assert.Contains(t, Terms, "$250,000")
	assert.Contains(t, Terms, "Delaware")
	assert.Contains(t, Terms, "American Arbitration Association")
}
