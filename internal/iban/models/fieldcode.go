package models

import "fmt"

// FieldCode is a single-character semantic tag for a segment of an IBAN
// format template. The country code itself is untagged (always the first
// two characters of a template), every other position carries a code.
//
// The set is closed. Every switch over FieldCode in this module handles
// every constant, so adding a code is a compile-visible change.
type FieldCode byte

const (
	FieldBalanceAccountNumber FieldCode = 'a'
	FieldBankCode             FieldCode = 'b'
	FieldAccountNumber        FieldCode = 'c'
	FieldNationalID           FieldCode = 'i'
	FieldCheckDigits          FieldCode = 'k'
	FieldCurrencyCode         FieldCode = 'm'
	FieldOwnerAccountNumber   FieldCode = 'o'
	FieldAccountNumberPrefix  FieldCode = 'p'
	FieldBICBankCode          FieldCode = 'q'
	FieldBranchCode           FieldCode = 's'
	FieldAccountType          FieldCode = 't'
	FieldNationalCheckDigits  FieldCode = 'x'

	// FieldZeroFiller marks reserved positions that are always literal
	// zeros (e.g. Turkey, Costa Rica). It carries no data and never
	// appears in parsed output or account records.
	FieldZeroFiller FieldCode = '0'
)

// FieldKey is the canonical name of a data-carrying field, as used in
// parsed output and account records.
type FieldKey string

const (
	KeyBalanceAccountNumber FieldKey = "balanceAccountNumber"
	KeyBankCode             FieldKey = "bankCode"
	KeyAccountNumber        FieldKey = "accountNumber"
	KeyNationalID           FieldKey = "nationalIdentificationNumber"
	KeyCheckDigits          FieldKey = "checkDigits"
	KeyCurrencyCode         FieldKey = "currencyCode"
	KeyOwnerAccountNumber   FieldKey = "ownerAccountNumber"
	KeyAccountNumberPrefix  FieldKey = "accountNumberPrefix"
	KeyBICBankCode          FieldKey = "bicBankCode"
	KeyBranchCode           FieldKey = "branchCode"
	KeyAccountType          FieldKey = "accountType"
	KeyNationalCheckDigits  FieldKey = "nationalCheckDigits"
)

var codeToKey = map[FieldCode]FieldKey{
	FieldBalanceAccountNumber: KeyBalanceAccountNumber,
	FieldBankCode:             KeyBankCode,
	FieldAccountNumber:        KeyAccountNumber,
	FieldNationalID:           KeyNationalID,
	FieldCheckDigits:          KeyCheckDigits,
	FieldCurrencyCode:         KeyCurrencyCode,
	FieldOwnerAccountNumber:   KeyOwnerAccountNumber,
	FieldAccountNumberPrefix:  KeyAccountNumberPrefix,
	FieldBICBankCode:          KeyBICBankCode,
	FieldBranchCode:           KeyBranchCode,
	FieldAccountType:          KeyAccountType,
	FieldNationalCheckDigits:  KeyNationalCheckDigits,
}

var keyToCode = func() map[FieldKey]FieldCode {
	m := make(map[FieldKey]FieldCode, len(codeToKey))
	for c, k := range codeToKey {
		m[k] = c
	}
	return m
}()

// IsValid reports whether c is a recognized template character.
func (c FieldCode) IsValid() bool {
	_, ok := codeToKey[c]
	return ok || c == FieldZeroFiller
}

// IsData reports whether c tags a data-carrying segment. Check digits are
// data (they appear in parsed output); the zero filler is not.
func (c FieldCode) IsData() bool {
	_, ok := codeToKey[c]
	return ok
}

func (c FieldCode) String() string {
	return string(c)
}

// Key returns the canonical field key for c. The zero filler and unknown
// characters have no key; this is a template invariant violation when it
// happens after validation, so callers treat the error as internal.
func (c FieldCode) Key() (FieldKey, error) {
	k, ok := codeToKey[c]
	if !ok {
		return "", fmt.Errorf("field code %q has no key", byte(c))
	}
	return k, nil
}

// KeyForCode is the table lookup behind FieldCode.Key, exposed for
// callers that hold the raw code character.
func KeyForCode(c FieldCode) (FieldKey, error) {
	return c.Key()
}

// CodeForKey returns the template character for a canonical field key.
func CodeForKey(k FieldKey) (FieldCode, error) {
	c, ok := keyToCode[k]
	if !ok {
		return 0, fmt.Errorf("unknown field key %q", k)
	}
	return c, nil
}

// DataCodes returns all data-carrying field codes in a stable order:
// mandatory fields first, then the optional fields alphabetically.
func DataCodes() []FieldCode {
	return []FieldCode{
		FieldBankCode,
		FieldAccountNumber,
		FieldBalanceAccountNumber,
		FieldNationalID,
		FieldCheckDigits,
		FieldCurrencyCode,
		FieldOwnerAccountNumber,
		FieldAccountNumberPrefix,
		FieldBICBankCode,
		FieldBranchCode,
		FieldAccountType,
		FieldNationalCheckDigits,
	}
}
