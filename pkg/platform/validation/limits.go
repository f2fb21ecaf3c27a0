package validation

import (
	"fmt"

	dErrors "ibanq/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// A full validation batch fits in well under a quarter of this.
	MaxBodySize = 64 * 1024
)

// Slice element count limits
const (
	// MaxBatchEntries is the hard ceiling on IBANs per batch validation
	// request, whatever the configured service limit is.
	MaxBatchEntries = 1000
)

// String element length limits
const (
	// MaxIBANLength is the longest input accepted as an IBAN: the ISO
	// 13616 maximum of 34 characters plus the spaces of the conventional
	// four-character grouping.
	MaxIBANLength = 42

	// MaxFieldValueLength is the longest accepted value for a single
	// account field. No national field is wider than a full BBAN.
	MaxFieldValueLength = 30

	// MaxBeneficiaryLength is the EPC069-12 cap on the beneficiary name
	// in a payment QR code.
	MaxBeneficiaryLength = 70
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEachStringLength validates that each string in a slice does not exceed the maximum length.
func CheckEachStringLength(fieldName string, values []string, max int) error {
	for _, v := range values {
		if len(v) > max {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
		}
	}
	return nil
}
