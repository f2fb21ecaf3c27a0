package codec

import (
	"ibanq/internal/iban/models"
	"ibanq/pkg/text"
)

// ChecksumMismatchMessage is the LastError text for a structurally valid
// IBAN whose check digits do not verify. Callers match on it in tests and
// user-facing output, so the wording is part of the contract.
const ChecksumMismatchMessage = "The checksum does not match."

// Decode parses an IBAN into its per-country fields.
//
// Grouping whitespace is stripped and the input uppercased before any
// positional work, so formatted and compact spellings decode identically.
// Errors are returned only for structural failures (unknown country, wrong
// length, malformed template); a checksum mismatch is a successful decode
// with Valid=false and LastError set, since the fields themselves were
// extracted correctly.
func (c *Codec) Decode(iban string) (*models.ParsedIBAN, error) {
	compact := text.CompactUpper(iban)
	if len(compact) < 2 {
		return nil, &CountryError{CountryCode: compact}
	}
	countryCode := compact[:2]

	t, err := c.template(countryCode)
	if err != nil {
		return nil, err
	}
	if len(compact) != len(t) {
		return nil, &LengthError{CountryCode: countryCode, Given: len(compact), Expected: len(t)}
	}

	runs, err := t.FieldRuns(RunOptions{})
	if err != nil {
		return nil, err
	}

	fields := make(map[models.FieldKey]string, len(runs))
	for _, run := range runs {
		key, err := run.Code.Key()
		if err != nil {
			return nil, &TemplateError{CountryCode: countryCode, Reason: err.Error()}
		}
		fields[key] = compact[run.Start : run.Start+run.Len]
	}

	// A validated template without the mandatory runs is a registry
	// defect, not a user error, and must not yield a half-populated result.
	for _, key := range []models.FieldKey{models.KeyBankCode, models.KeyAccountNumber, models.KeyCheckDigits} {
		if _, ok := fields[key]; !ok {
			return nil, &TemplateError{CountryCode: countryCode, Reason: "no " + string(key) + " run"}
		}
	}

	parsed := &models.ParsedIBAN{
		IBAN:        compact,
		CountryCode: countryCode,
		Fields:      fields,
		Valid:       true,
	}

	rec, err := parsed.Record()
	if err != nil {
		return nil, &TemplateError{CountryCode: countryCode, Reason: err.Error()}
	}
	ok, err := VerifyCheckDigits(rec, t, parsed.CheckDigits())
	switch {
	case err != nil:
		parsed.Valid = false
		parsed.LastError = err.Error()
	case !ok:
		parsed.Valid = false
		parsed.LastError = ChecksumMismatchMessage
	}
	return parsed, nil
}

// Describe returns the registered layout for a country: the normalized
// template plus its runs in positional order.
func (c *Codec) Describe(countryCode string) (string, []models.FieldSpec, error) {
	t, err := c.template(countryCode)
	if err != nil {
		return "", nil, err
	}
	specs, err := t.Describe()
	if err != nil {
		return "", nil, err
	}
	return string(t), specs, nil
}
