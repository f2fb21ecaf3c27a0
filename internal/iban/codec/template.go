package codec

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"ibanq/internal/iban/models"
)

// Template is a space-free country format string. The first two characters
// are the literal country code, characters 3-4 are the check-digit code
// twice, and every remaining character is a field code. Registry entries
// are written in 4-character groups for readability and normalized here.
type Template string

// NormalizeTemplate strips all whitespace from a raw registry entry.
func NormalizeTemplate(raw string) Template {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return Template(b.String())
}

// CountryCode returns the literal country prefix of the template.
func (t Template) CountryCode() string {
	if len(t) < 2 {
		return string(t)
	}
	return string(t[:2])
}

// Validate checks that every character after the country prefix is a
// recognized field code. The unsupported remainder is reported
// deduplicated and sorted. A template that fails validation must be
// treated as if the country were not registered at all; silently skipping
// unknown positions would corrupt decoded or generated output.
func (t Template) Validate() error {
	if len(t) < 4 {
		return &TemplateError{CountryCode: t.CountryCode(), Reason: "shorter than country code and check digits"}
	}
	seen := map[byte]struct{}{}
	for i := 2; i < len(t); i++ {
		c := models.FieldCode(t[i])
		if !c.IsValid() {
			seen[t[i]] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	chars := make([]string, 0, len(seen))
	for c := range seen {
		chars = append(chars, string(c))
	}
	sort.Strings(chars)
	return &CountryError{
		CountryCode: t.CountryCode(),
		Detail:      fmt.Sprintf("template contains unsupported characters %q", strings.Join(chars, "")),
	}
}

// FieldRun is one maximal contiguous run of a field code, with its offset
// in the space-free template. Offsets apply unchanged to a compact IBAN of
// the same country.
type FieldRun struct {
	Code  models.FieldCode
	Start int
	Len   int
}

// RunOptions selects which runs FieldRuns yields. The zero filler is
// excluded by default because it represents reserved positions, not data;
// the checksum path requests it so the literal zeros participate in the
// mod-97 string. Check digits are excluded on the paths that assemble or
// verify them.
type RunOptions struct {
	IncludeZeroFiller  bool
	ExcludeCheckDigits bool
}

// FieldRuns scans the template left to right, skipping the two-character
// country prefix, and returns the runs in positional order. A field code
// occurring in two disjoint runs violates the format invariants.
func (t Template) FieldRuns(opts RunOptions) ([]FieldRun, error) {
	runs := make([]FieldRun, 0, 8)
	claimed := map[models.FieldCode]struct{}{}

	for i := 2; i < len(t); {
		code := models.FieldCode(t[i])
		j := i + 1
		for j < len(t) && models.FieldCode(t[j]) == code {
			j++
		}
		if !code.IsValid() {
			return nil, &TemplateError{
				CountryCode: t.CountryCode(),
				Reason:      fmt.Sprintf("unknown field code %q at offset %d", t[i], i),
			}
		}
		if _, dup := claimed[code]; dup {
			return nil, &TemplateError{
				CountryCode: t.CountryCode(),
				Reason:      fmt.Sprintf("field code %q occurs in two separate runs", t[i]),
			}
		}
		claimed[code] = struct{}{}

		skip := (code == models.FieldZeroFiller && !opts.IncludeZeroFiller) ||
			(code == models.FieldCheckDigits && opts.ExcludeCheckDigits)
		if !skip {
			runs = append(runs, FieldRun{Code: code, Start: i, Len: j - i})
		}
		i = j
	}
	return runs, nil
}

// Describe returns the template's layout as field specs for the country
// directory: every run in positional order, reserved filler included.
func (t Template) Describe() ([]models.FieldSpec, error) {
	runs, err := t.FieldRuns(RunOptions{IncludeZeroFiller: true})
	if err != nil {
		return nil, err
	}
	specs := make([]models.FieldSpec, 0, len(runs))
	for _, run := range runs {
		if run.Code == models.FieldZeroFiller {
			specs = append(specs, models.FieldSpec{Start: run.Start, Length: run.Len, Reserved: true})
			continue
		}
		key, err := run.Code.Key()
		if err != nil {
			return nil, &TemplateError{CountryCode: t.CountryCode(), Reason: err.Error()}
		}
		specs = append(specs, models.FieldSpec{Key: key, Start: run.Start, Length: run.Len})
	}
	return specs, nil
}
