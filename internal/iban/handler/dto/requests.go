// Package dto defines the wire shapes of the IBAN API. Requests carry
// their own normalization and validation so handlers stay thin.
package dto

import (
	"strings"

	"ibanq/internal/iban/models"
	dErrors "ibanq/pkg/domain-errors"
	limits "ibanq/pkg/platform/validation"
	"ibanq/pkg/validation"
)

// DecodeRequest asks for one IBAN to be parsed into its fields.
type DecodeRequest struct {
	IBAN string `json:"iban" validate:"required,notblank,max=42"`
}

// Normalize trims surrounding whitespace; interior spacing is part of the
// accepted input and handled by the codec.
func (r *DecodeRequest) Normalize() {
	if r == nil {
		return
	}
	r.IBAN = strings.TrimSpace(r.IBAN)
}

// Validate checks that the request is well-formed.
func (r *DecodeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

// ValidateRequest asks for a validity verdict on one IBAN.
type ValidateRequest struct {
	IBAN string `json:"iban" validate:"required,notblank,max=42"`
}

// Normalize trims surrounding whitespace.
func (r *ValidateRequest) Normalize() {
	if r == nil {
		return
	}
	r.IBAN = strings.TrimSpace(r.IBAN)
}

// Validate checks that the request is well-formed.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

// ValidateBatchRequest asks for verdicts on a list of IBANs. Responses are
// positional, so entries are not deduplicated.
type ValidateBatchRequest struct {
	IBANs []string `json:"ibans" validate:"required,min=1"`
}

// Normalize trims each entry.
func (r *ValidateBatchRequest) Normalize() {
	if r == nil {
		return
	}
	for i, iban := range r.IBANs {
		r.IBANs[i] = strings.TrimSpace(iban)
	}
}

// Validate checks the batch shape. The configured per-request limit is
// enforced by the service; this guards only the absolute ceiling.
func (r *ValidateBatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := limits.CheckSliceCount("ibans", len(r.IBANs), limits.MaxBatchEntries); err != nil {
		return err
	}
	return limits.CheckEachStringLength("iban", r.IBANs, limits.MaxIBANLength)
}

// EncodeRequest carries the account data for IBAN generation. Country,
// bank code, and account number are universal; Fields holds any further
// national fields keyed by their field names (branchCode, accountType,
// nationalCheckDigits, ...).
type EncodeRequest struct {
	Country       string            `json:"country" validate:"required,len=2,alpha"`
	BankCode      string            `json:"bank_code" validate:"required,notblank"`
	AccountNumber string            `json:"account_number" validate:"required,notblank"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// Normalize uppercases the country and trims the universal fields.
func (r *EncodeRequest) Normalize() {
	if r == nil {
		return
	}
	r.Country = strings.ToUpper(strings.TrimSpace(r.Country))
	r.BankCode = strings.TrimSpace(r.BankCode)
	r.AccountNumber = strings.TrimSpace(r.AccountNumber)
}

// Validate checks the request shape and the width of every field value.
func (r *EncodeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := limits.CheckStringLength("bank_code", r.BankCode, limits.MaxFieldValueLength); err != nil {
		return err
	}
	if err := limits.CheckStringLength("account_number", r.AccountNumber, limits.MaxFieldValueLength); err != nil {
		return err
	}
	values := make([]string, 0, len(r.Fields))
	for _, v := range r.Fields {
		values = append(values, v)
	}
	return limits.CheckEachStringLength("field value", values, limits.MaxFieldValueLength)
}

// ToRecord converts the validated request into a domain account record.
// Unknown field names are rejected here; whether a known field is allowed
// for the target country is the codec's call.
func (r *EncodeRequest) ToRecord() (*models.AccountRecord, error) {
	rec, err := models.NewAccountRecord(r.Country, r.BankCode, r.AccountNumber)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, err.Error())
	}
	for key, value := range r.Fields {
		if err := rec.SetField(models.FieldKey(key), value); err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
	}
	return rec, nil
}
