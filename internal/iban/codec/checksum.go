package codec

import (
	"fmt"
	"strings"

	"ibanq/internal/iban/models"
)

// ISO 7064 MOD 97-10. The rearranged numeric string exceeds 64-bit range
// for most countries, so the remainder is accumulated digit by digit
// instead of parsing the whole string.
func mod97(numeric string) (int, error) {
	if numeric == "" {
		return 0, fmt.Errorf("%w: empty input", ErrNotNumeric)
	}
	acc := 0
	for i := 0; i < len(numeric); i++ {
		d := numeric[i]
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("%w: character %q at position %d", ErrNotNumeric, d, i)
		}
		acc = (acc*10 + int(d-'0')) % 97
	}
	return acc, nil
}

// transliterate maps letters to their alphabet position plus ten (A=10 ...
// Z=35), case-insensitively; digits pass through. Only the country code
// segment is transliterated. Account and bank fields are fed to the mod-97
// step verbatim even when a national format makes them alphanumeric;
// widening the transliteration scope would silently change check digits
// for real accounts.
func transliterate(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			fmt.Fprintf(&b, "%d", int(c-'A')+10)
		case c >= 'a' && c <= 'z':
			fmt.Fprintf(&b, "%d", int(c-'a')+10)
		default:
			return "", fmt.Errorf("%w: character %q is not a letter or digit", ErrNotNumeric, c)
		}
	}
	return b.String(), nil
}

// padLeft zero-pads v to width. Values wider than their run fail encoding.
func padLeft(cc string, key models.FieldKey, v string, width int) (string, error) {
	if len(v) > width {
		return "", valueTooLong(cc, key, width)
	}
	if len(v) == width {
		return v, nil
	}
	return strings.Repeat("0", width-len(v)) + v, nil
}

// assembleBBAN concatenates the record's field values in template
// positional order, check digits excluded. Reserved filler runs contribute
// literal zeros; short values are left-zero-padded to their run width.
// Every data run of the template must be present in the record, callers
// enforce field symmetry first.
func assembleBBAN(rec *models.AccountRecord, t Template) (string, error) {
	runs, err := t.FieldRuns(RunOptions{IncludeZeroFiller: true, ExcludeCheckDigits: true})
	if err != nil {
		return "", err
	}
	cc := t.CountryCode()
	var b strings.Builder
	b.Grow(len(t) - 4)
	for _, run := range runs {
		if run.Code == models.FieldZeroFiller {
			b.WriteString(strings.Repeat("0", run.Len))
			continue
		}
		key, err := run.Code.Key()
		if err != nil {
			return "", &TemplateError{CountryCode: cc, Reason: err.Error()}
		}
		v, ok := rec.Field(key)
		if !ok {
			return "", missingField(cc, key)
		}
		padded, err := padLeft(cc, key, v, run.Len)
		if err != nil {
			return "", err
		}
		b.WriteString(padded)
	}
	return b.String(), nil
}

// ComputeCheckDigits derives the two check digits for a record under the
// given template: BBAN + transliterated country code + "00", remainder mod
// 97, then 98 minus the remainder, zero-padded.
func ComputeCheckDigits(rec *models.AccountRecord, t Template) (string, error) {
	bban, err := assembleBBAN(rec, t)
	if err != nil {
		return "", err
	}
	country, err := transliterate(t.CountryCode())
	if err != nil {
		return "", err
	}
	rem, err := mod97(bban + country + "00")
	if err != nil {
		return "", fmt.Errorf("check digits for %s: %w", t.CountryCode(), err)
	}
	return fmt.Sprintf("%02d", 98-rem), nil
}

// VerifyCheckDigits reports whether the claimed check digits match the
// computed ones. The comparison is plain text on the two-character
// strings, never numeric; a missing leading zero is a real mismatch.
func VerifyCheckDigits(rec *models.AccountRecord, t Template, claimed string) (bool, error) {
	computed, err := ComputeCheckDigits(rec, t)
	if err != nil {
		return false, err
	}
	return computed == claimed, nil
}
