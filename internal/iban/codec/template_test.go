package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibanq/internal/iban/models"
)

func TestNormalizeTemplate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Template
	}{
		{"grouped", "DEkk bbbb bbbb cccc cccc cc", "DEkkbbbbbbbbcccccccccc"},
		{"already compact", "NLkkbbbbcccccccccc", "NLkkbbbbcccccccccc"},
		{"tabs and newlines", "ATkk\tbbbb\nbccc cccc cccc", "ATkkbbbbbccccccccccc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTemplate(tt.raw))
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	t.Run("accepts a well-formed template", func(t *testing.T) {
		tpl := NormalizeTemplate("FRkk bbbb bsss sscc cccc cccc cxx")
		assert.NoError(t, tpl.Validate())
	})

	t.Run("accepts every field code", func(t *testing.T) {
		tpl := Template("XYkkabcimopqstx0")
		assert.NoError(t, tpl.Validate())
	})

	t.Run("reports unsupported characters deduplicated and sorted", func(t *testing.T) {
		tpl := Template("YYkkbbyzyzcc")
		err := tpl.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedCountry)

		var ce *CountryError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "YY", ce.CountryCode)
		assert.Contains(t, ce.Detail, `"yz"`)
	})

	t.Run("country prefix characters are exempt only in the first two positions", func(t *testing.T) {
		// the literal Y at offsets 4-5 is not a field code
		err := Template("YYkkYYbbcc").Validate()
		assert.ErrorIs(t, err, ErrUnsupportedCountry)
	})

	t.Run("rejects templates shorter than prefix plus check digits", func(t *testing.T) {
		err := Template("DE").Validate()
		assert.ErrorIs(t, err, ErrBadTemplate)
	})
}

func TestTemplateFieldRuns(t *testing.T) {
	at := NormalizeTemplate("ATkk bbbb bccc cccc cccc")

	t.Run("returns maximal runs in positional order", func(t *testing.T) {
		runs, err := at.FieldRuns(RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, []FieldRun{
			{Code: models.FieldCheckDigits, Start: 2, Len: 2},
			{Code: models.FieldBankCode, Start: 4, Len: 5},
			{Code: models.FieldAccountNumber, Start: 9, Len: 11},
		}, runs)
	})

	t.Run("excludes check digits on request", func(t *testing.T) {
		runs, err := at.FieldRuns(RunOptions{ExcludeCheckDigits: true})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, models.FieldBankCode, runs[0].Code)
	})

	t.Run("zero filler appears only when requested", func(t *testing.T) {
		tr := NormalizeTemplate("TRkk bbbb b0cc cccc cccc cccc cc")

		runs, err := tr.FieldRuns(RunOptions{})
		require.NoError(t, err)
		for _, run := range runs {
			assert.NotEqual(t, models.FieldZeroFiller, run.Code)
		}

		runs, err = tr.FieldRuns(RunOptions{IncludeZeroFiller: true})
		require.NoError(t, err)
		assert.Contains(t, runs, FieldRun{Code: models.FieldZeroFiller, Start: 9, Len: 1})
	})

	t.Run("run lengths plus country prefix cover the template", func(t *testing.T) {
		mu := NormalizeTemplate("MUkk qqqq bbss cccc cccc cccc 000m mm")
		runs, err := mu.FieldRuns(RunOptions{IncludeZeroFiller: true})
		require.NoError(t, err)

		total := 2
		for _, run := range runs {
			total += run.Len
		}
		assert.Equal(t, len(mu), total)
	})

	t.Run("a code split into two runs is an invariant violation", func(t *testing.T) {
		_, err := Template("ZZkkbbccbbcc").FieldRuns(RunOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadTemplate)

		var te *TemplateError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "ZZ", te.CountryCode)
	})

	t.Run("unknown code character fails the scan", func(t *testing.T) {
		_, err := Template("ZZkkbbzcc").FieldRuns(RunOptions{})
		assert.ErrorIs(t, err, ErrBadTemplate)
	})
}

func TestTemplateDescribe(t *testing.T) {
	tr := NormalizeTemplate("TRkk bbbb b0cc cccc cccc cccc cc")
	specs, err := tr.Describe()
	require.NoError(t, err)

	require.Len(t, specs, 4)
	assert.Equal(t, models.FieldSpec{Key: models.KeyCheckDigits, Start: 2, Length: 2}, specs[0])
	assert.Equal(t, models.FieldSpec{Key: models.KeyBankCode, Start: 4, Length: 5}, specs[1])
	assert.Equal(t, models.FieldSpec{Start: 9, Length: 1, Reserved: true}, specs[2])
	assert.Equal(t, models.FieldSpec{Key: models.KeyAccountNumber, Start: 10, Length: 16}, specs[3])
}
