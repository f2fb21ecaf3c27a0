package models

import "fmt"

// ParsedIBAN is the decode result. Fields holds every data field the
// country's template declares, including the check digits; a key absent
// from the map means the template does not use that field, never that it
// was empty.
//
// Valid and LastError are kept consistent: Valid is true iff LastError is
// empty. A checksum mismatch yields Valid=false with the fields still
// populated, because the input remains structurally well formed.
type ParsedIBAN struct {
	IBAN        string
	CountryCode string
	Fields      map[FieldKey]string
	Valid       bool
	LastError   string
}

// Field returns the extracted value for key and whether the country's
// template uses the field at all.
func (p *ParsedIBAN) Field(key FieldKey) (string, bool) {
	v, ok := p.Fields[key]
	return v, ok
}

// BankCode returns the mandatory bank code field.
func (p *ParsedIBAN) BankCode() string {
	return p.Fields[KeyBankCode]
}

// AccountNumber returns the mandatory account number field.
func (p *ParsedIBAN) AccountNumber() string {
	return p.Fields[KeyAccountNumber]
}

// CheckDigits returns the extracted check digit pair.
func (p *ParsedIBAN) CheckDigits() string {
	return p.Fields[KeyCheckDigits]
}

// Record derives an AccountRecord from the parsed fields, the controlled
// fill step for re-encoding a previously decoded IBAN. Check digits are
// dropped; they are recomputed on encode.
func (p *ParsedIBAN) Record() (*AccountRecord, error) {
	rec, err := NewAccountRecord(p.CountryCode, p.BankCode(), p.AccountNumber())
	if err != nil {
		return nil, fmt.Errorf("derive record: %w", err)
	}
	for k, v := range p.Fields {
		switch k {
		case KeyBankCode, KeyAccountNumber, KeyCheckDigits:
			continue
		}
		if err := rec.SetField(k, v); err != nil {
			return nil, fmt.Errorf("derive record: %w", err)
		}
	}
	return rec, nil
}

// CountryInfo is a registry listing entry.
type CountryInfo struct {
	Code   string
	Name   string
	Length int
}

// FieldSpec describes one contiguous template run. Start is the offset in
// the space-free IBAN. Reserved runs are the always-zero filler positions;
// they carry no field key.
type FieldSpec struct {
	Key      FieldKey
	Start    int
	Length   int
	Reserved bool
}

// CountryDetail is the full per-country format description served by the
// countries endpoint and the CLI.
type CountryDetail struct {
	CountryInfo
	Template string
	Fields   []FieldSpec
}

// ValidationResult is the per-IBAN outcome of a validate call. For inputs
// that failed to parse, IBAN echoes the caller's string unchanged; for
// parsed inputs it is the compacted uppercase form.
type ValidationResult struct {
	IBAN      string
	Valid     bool
	LastError string
}
