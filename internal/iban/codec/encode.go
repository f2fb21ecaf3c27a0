package codec

import (
	"ibanq/internal/iban/models"
)

// Encode generates the IBAN for an account record.
//
// Field symmetry is strict and checked before any checksum work: every
// data field the country's template declares must be present in the
// record, and the record must not carry fields the template does not use.
// Short values are left-zero-padded to their run width; overlong values
// fail with the offending field and its allotted width.
func (c *Codec) Encode(rec *models.AccountRecord) (string, error) {
	countryCode := rec.CountryCode()
	t, err := c.template(countryCode)
	if err != nil {
		return "", err
	}

	if err := checkFieldSymmetry(rec, t); err != nil {
		return "", err
	}

	bban, err := assembleBBAN(rec, t)
	if err != nil {
		return "", err
	}
	check, err := ComputeCheckDigits(rec, t)
	if err != nil {
		return "", err
	}
	return countryCode + check + bban, nil
}

// checkFieldSymmetry compares the record's keys against the template's
// data runs. Missing required fields are reported first, in template
// order; extra fields the template has no run for come second, in record
// key order.
func checkFieldSymmetry(rec *models.AccountRecord, t Template) error {
	runs, err := t.FieldRuns(RunOptions{ExcludeCheckDigits: true})
	if err != nil {
		return err
	}
	cc := t.CountryCode()

	declared := make(map[models.FieldKey]struct{}, len(runs))
	for _, run := range runs {
		key, err := run.Code.Key()
		if err != nil {
			return &TemplateError{CountryCode: cc, Reason: err.Error()}
		}
		declared[key] = struct{}{}
		if _, ok := rec.Field(key); !ok {
			return missingField(cc, key)
		}
	}
	for _, key := range rec.Keys() {
		if _, ok := declared[key]; !ok {
			return unknownField(cc, key)
		}
	}
	return nil
}
