package tools

import (
	"context"
	"encoding/json"

	"github.com/gowrivallaban/account-open-agenticAI/account"
	"github.com/gowrivallaban/account-open-agenticAI/core/protocol"
	"github.com/gowrivallaban/account-open-agenticAI/validate"
)

// Names of the fixed banking tool catalog. These must match the names the
// system prompt references for engine integration to function.
const (
	ToolValidateField = "validate_field"
	ToolShowAgreement = "show_agreement"
	ToolCreateAccount = "create_account"
)

type validateFieldArgs struct {
	FieldName string `json:"field_name" jsonschema:"enum=firstName,enum=lastName,enum=email,enum=phone,enum=dateOfBirth,enum=ssn,enum=street,enum=city,enum=state,enum=zip" jsonschema_description:"The name of the field to validate"`
	Value     string `json:"value" jsonschema_description:"The value provided by the user"`
}

type showAgreementArgs struct{}

type createAccountArgs struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone" jsonschema_description:"10-digit phone number"`
	DateOfBirth string `json:"dateOfBirth" jsonschema_description:"Date in MM/DD/YYYY or YYYY-MM-DD format"`
	SSN         string `json:"ssn" jsonschema_description:"9-digit SSN"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state" jsonschema_description:"2-letter US state code"`
	Zip         string `json:"zip" jsonschema_description:"5-digit ZIP code"`
}

// AgreementResult is the show_agreement envelope.
type AgreementResult struct {
	Terms       string `json:"terms"`
	Instruction string `json:"instruction"`
}

// CreateAccountResult is the create_account envelope. The orchestrator
// inspects it to lift account details into response metadata.
type CreateAccountResult struct {
	Success       bool   `json:"success"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
	AccountType   string `json:"accountType"`
	CustomerName  string `json:"customerName"`
	Message       string `json:"message"`
}

// RegisterAccountTools installs the fixed catalog into the registry:
// validate_field, show_agreement, and create_account.
func RegisterAccountTools() error {
	if err := Register(protocol.Tool{
		Name:        ToolValidateField,
		Description: "Validate a single form field value for the checking account application. Call this every time the user provides a value for a field.",
		Parameters:  schemaFor[validateFieldArgs](),
	}, handleValidateField); err != nil {
		return err
	}

	if err := Register(protocol.Tool{
		Name:        ToolShowAgreement,
		Description: "Retrieve the Terms & Conditions document. Call this after all fields are collected and confirmed by the user, before account creation.",
		Parameters:  schemaFor[showAgreementArgs](),
	}, handleShowAgreement); err != nil {
		return err
	}

	return Register(protocol.Tool{
		Name:        ToolCreateAccount,
		Description: "Create the checking account after the user has agreed to the Terms & Conditions. Pass all validated customer data.",
		Parameters:  schemaFor[createAccountArgs](),
	}, handleCreateAccount)
}

func handleValidateField(_ context.Context, raw json.RawMessage) (Result, error) {
	var args validateFieldArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return Result{Content: "invalid arguments: " + err.Error(), IsError: true}, nil
	}

	return marshalResult(validate.Check(validate.Field(args.FieldName), args.Value))
}

func handleShowAgreement(_ context.Context, _ json.RawMessage) (Result, error) {
	return marshalResult(AgreementResult{
		Terms:       account.Terms,
		Instruction: account.TermsInstruction,
	})
}

func handleCreateAccount(_ context.Context, raw json.RawMessage) (Result, error) {
	var args createAccountArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return Result{Content: "invalid arguments: " + err.Error(), IsError: true}, nil
	}

	acct := account.New(args.FirstName, args.LastName)
	return marshalResult(CreateAccountResult{
		Success:       true,
		AccountNumber: acct.AccountNumber,
		RoutingNumber: acct.RoutingNumber,
		AccountType:   acct.AccountType,
		CustomerName:  acct.CustomerName,
		Message:       acct.Message,
	})
}

func marshalResult(v any) (Result, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: string(data)}, nil
}
