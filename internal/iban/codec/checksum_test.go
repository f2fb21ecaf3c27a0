package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibanq/internal/iban/models"
)

func TestMod97(t *testing.T) {
	t.Run("small values", func(t *testing.T) {
		tests := []struct {
			in   string
			want int
		}{
			{"0", 0},
			{"97", 0},
			{"98", 1},
			{"100", 3},
			{"9", 9},
		}
		for _, tt := range tests {
			got, err := mod97(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "mod97(%s)", tt.in)
		}
	})

	t.Run("streams past 64-bit range", func(t *testing.T) {
		// rearranged string for DE02120300000000202051 with the 00 placeholder
		got, err := mod97("120300000000202051131400")
		require.NoError(t, err)
		assert.Equal(t, 96, got)
	})

	t.Run("is deterministic", func(t *testing.T) {
		a, err := mod97("3000271753300020053701591527")
		require.NoError(t, err)
		b, err := mod97("3000271753300020053701591527")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := mod97("")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("rejects non-digits naming the offender", func(t *testing.T) {
		_, err := mod97("12A4")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotNumeric)
		assert.Contains(t, err.Error(), `'A'`)
		assert.Contains(t, err.Error(), "position 2")
	})
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"uppercase country code", "DE", "1314", false},
		{"lowercase is equivalent", "de", "1314", false},
		{"austria", "AT", "1029", false},
		{"alphabet bounds", "AZ", "1035", false},
		{"digits pass through", "D2", "132", false},
		{"punctuation fails", "D-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transliterate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotNumeric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPadLeft(t *testing.T) {
	t.Run("pads short values with zeros on the left", func(t *testing.T) {
		got, err := padLeft("AT", models.KeyAccountNumber, "1349870", 11)
		require.NoError(t, err)
		assert.Equal(t, "00001349870", got)
	})

	t.Run("keeps exact-width values", func(t *testing.T) {
		got, err := padLeft("DE", models.KeyBankCode, "12030000", 8)
		require.NoError(t, err)
		assert.Equal(t, "12030000", got)
	})

	t.Run("overlong values fail naming field and width", func(t *testing.T) {
		_, err := padLeft("AT", models.KeyBankCode, "600001", 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTooLong)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, models.KeyBankCode, fe.Key)
		assert.Equal(t, 5, fe.Width)
	})
}

func TestComputeCheckDigits(t *testing.T) {
	de := NormalizeTemplate("DEkk bbbb bbbb cccc cccc cc")
	fr := NormalizeTemplate("FRkk bbbb bsss sscc cccc cccc cxx")

	t.Run("german seed record", func(t *testing.T) {
		rec, err := models.NewAccountRecord("DE", "12030000", "0000202051")
		require.NoError(t, err)

		got, err := ComputeCheckDigits(rec, de)
		require.NoError(t, err)
		assert.Equal(t, "02", got)
	})

	t.Run("french seed record", func(t *testing.T) {
		rec, err := models.NewAccountRecord("FR", "30027", "00020053701")
		require.NoError(t, err)
		require.NoError(t, rec.SetField(models.KeyBranchCode, "17533"))
		require.NoError(t, rec.SetField(models.KeyNationalCheckDigits, "59"))

		got, err := ComputeCheckDigits(rec, fr)
		require.NoError(t, err)
		assert.Equal(t, "76", got)
	})

	t.Run("zero filler contributes literal zeros", func(t *testing.T) {
		tr := NormalizeTemplate("TRkk bbbb b0cc cccc cccc cccc cc")
		rec, err := models.NewAccountRecord("TR", "00061", "0519786457841326")
		require.NoError(t, err)

		got, err := ComputeCheckDigits(rec, tr)
		require.NoError(t, err)
		assert.Equal(t, "33", got)
	})

	t.Run("letters outside the country code are not transliterated", func(t *testing.T) {
		nl := NormalizeTemplate("NLkk bbbb cccc cccc cc")
		rec, err := models.NewAccountRecord("NL", "ABNA", "0417164300")
		require.NoError(t, err)

		_, err = ComputeCheckDigits(rec, nl)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("missing template field fails before any arithmetic", func(t *testing.T) {
		rec, err := models.NewAccountRecord("FR", "30027", "00020053701")
		require.NoError(t, err)

		_, err = ComputeCheckDigits(rec, fr)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestVerifyCheckDigits(t *testing.T) {
	de := NormalizeTemplate("DEkk bbbb bbbb cccc cccc cc")
	rec, err := models.NewAccountRecord("DE", "12030000", "0000202051")
	require.NoError(t, err)

	t.Run("matches on exact text", func(t *testing.T) {
		ok, err := VerifyCheckDigits(rec, de, "02")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mismatching digits", func(t *testing.T) {
		ok, err := VerifyCheckDigits(rec, de, "03")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("a dropped leading zero is a mismatch, not a tolerated variant", func(t *testing.T) {
		ok, err := VerifyCheckDigits(rec, de, "2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
