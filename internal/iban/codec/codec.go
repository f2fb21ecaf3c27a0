// Package codec implements IBAN decoding and generation over per-country
// positional format templates, with ISO 7064 MOD 97-10 check digits.
//
// The codec is pure computation: no I/O, no shared mutable state, safe for
// concurrent use. Formats come from a FormatSource, normally the static
// registry.
package codec

import "strings"

// FormatSource resolves a country code to its raw format template.
// Implementations may return templates with grouping whitespace; the codec
// normalizes them. Matching must be case-insensitive on the first two
// characters. ok is false when no format is registered.
type FormatSource interface {
	Lookup(countryCode string) (template string, ok bool)
}

// Codec decodes and encodes IBANs for every country its format source
// knows.
type Codec struct {
	formats FormatSource
}

// New returns a Codec reading formats from src.
func New(src FormatSource) *Codec {
	return &Codec{formats: src}
}

// template fetches, normalizes and validates the format for a country
// code. A registry miss and an unusable registered template both come back
// as ErrUnsupportedCountry.
func (c *Codec) template(countryCode string) (Template, error) {
	raw, ok := c.formats.Lookup(countryCode)
	if !ok {
		return "", &CountryError{CountryCode: countryCode}
	}
	t := NormalizeTemplate(raw)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Format renders an IBAN in the conventional human-readable grouping:
// chunks of four characters separated by single spaces, no trailing space.
// It is purely presentational and performs no validation.
func Format(iban string) string {
	if len(iban) <= 4 {
		return iban
	}
	var b strings.Builder
	b.Grow(len(iban) + len(iban)/4)
	for i := 0; i < len(iban); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(iban) {
			end = len(iban)
		}
		b.WriteString(iban[i:end])
	}
	return b.String()
}
