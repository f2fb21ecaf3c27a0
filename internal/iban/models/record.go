package models

import (
	"fmt"
	"sort"
	"strings"
)

// AccountRecord is the encode-side input: a country code plus the data
// fields of a national account. Bank code and account number are mandatory
// for every country; all other fields are present only when the country's
// template uses them. Whether a field is allowed for the target country is
// checked at encode time against the template, not here.
type AccountRecord struct {
	countryCode string
	fields      map[FieldKey]string
}

// NewAccountRecord builds a record with the two universally mandatory
// fields. The country code is uppercased; values are kept verbatim.
func NewAccountRecord(countryCode, bankCode, accountNumber string) (*AccountRecord, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return nil, fmt.Errorf("country code must not be empty")
	}
	if bankCode == "" {
		return nil, fmt.Errorf("bank code must not be empty")
	}
	if accountNumber == "" {
		return nil, fmt.Errorf("account number must not be empty")
	}
	return &AccountRecord{
		countryCode: countryCode,
		fields: map[FieldKey]string{
			KeyBankCode:      bankCode,
			KeyAccountNumber: accountNumber,
		},
	}, nil
}

// SetField adds or replaces a data field. Check digits are computed during
// encoding and cannot be supplied; unknown keys are rejected.
func (r *AccountRecord) SetField(key FieldKey, value string) error {
	if key == KeyCheckDigits {
		return fmt.Errorf("check digits are derived, not supplied")
	}
	if _, err := CodeForKey(key); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("value for %s must not be empty", key)
	}
	r.fields[key] = value
	return nil
}

// CountryCode returns the uppercased ISO 3166 alpha-2 country code.
func (r *AccountRecord) CountryCode() string {
	return r.countryCode
}

// Field returns the value for key and whether it is present.
func (r *AccountRecord) Field(key FieldKey) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// BankCode returns the mandatory national bank code.
func (r *AccountRecord) BankCode() string {
	return r.fields[KeyBankCode]
}

// AccountNumber returns the mandatory account number.
func (r *AccountRecord) AccountNumber() string {
	return r.fields[KeyAccountNumber]
}

// Fields returns a copy of the field map.
func (r *AccountRecord) Fields() map[FieldKey]string {
	out := make(map[FieldKey]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Keys returns the present field keys in lexical order.
func (r *AccountRecord) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
