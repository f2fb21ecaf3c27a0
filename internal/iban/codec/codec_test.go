package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibanq/internal/iban/models"
)

type stubFormats map[string]string

func (s stubFormats) Lookup(countryCode string) (string, bool) {
	t, ok := s[strings.ToUpper(countryCode)]
	return t, ok
}

// testFormats holds real country layouts plus deliberately broken entries
// for the failure paths.
var testFormats = stubFormats{
	"AT": "ATkk bbbb bccc cccc cccc",
	"CR": "CRkk 0bbb cccc cccc cccc cc",
	"CZ": "CZkk bbbb pppp ppcc cccc cccc",
	"DE": "DEkk bbbb bbbb cccc cccc cc",
	"FR": "FRkk bbbb bsss sscc cccc cccc cxx",
	"HU": "HUkk bbbs sssx cccc cccc cccc cccc",
	"MU": "MUkk qqqq bbss cccc cccc cccc 000m mm",
	"NL": "NLkk bbbb cccc cccc cc",
	"TR": "TRkk bbbb b0cc cccc cccc cccc cc",

	"YY": "YYkk bbyy cccc",      // unknown template characters
	"ZZ": "ZZkk bbcc bbcc",      // bank and account codes split in two runs
	"QQ": "QQkk ssss cccc cccc", // no bank code run
}

func newTestCodec() *Codec {
	return New(testFormats)
}

func TestDecode(t *testing.T) {
	c := newTestCodec()

	t.Run("valid austrian iban", func(t *testing.T) {
		parsed, err := c.Decode("AT026000000001349870")
		require.NoError(t, err)

		assert.True(t, parsed.Valid)
		assert.Empty(t, parsed.LastError)
		assert.Equal(t, "AT", parsed.CountryCode)
		assert.Equal(t, "60000", parsed.BankCode())
		assert.Equal(t, "00001349870", parsed.AccountNumber())
		assert.Equal(t, "02", parsed.CheckDigits())
	})

	t.Run("checksum mismatch is not a decode failure", func(t *testing.T) {
		parsed, err := c.Decode("DE03120300000000202051")
		require.NoError(t, err)

		assert.False(t, parsed.Valid)
		assert.Equal(t, ChecksumMismatchMessage, parsed.LastError)
		// fields are still extracted
		assert.Equal(t, "12030000", parsed.BankCode())
		assert.Equal(t, "0000202051", parsed.AccountNumber())
		assert.Equal(t, "03", parsed.CheckDigits())
	})

	t.Run("one character short is a length error with both lengths", func(t *testing.T) {
		_, err := c.Decode("DE0312030000000020205")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidLength)

		var le *LengthError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, 21, le.Given)
		assert.Equal(t, 22, le.Expected)
		assert.Equal(t, "DE", le.CountryCode)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := c.Decode("XX02120300000000202051")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedCountry)

		var ce *CountryError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "XX", ce.CountryCode)
	})

	t.Run("registered country with unusable template is unsupported, not skipped", func(t *testing.T) {
		_, err := c.Decode("YY0212341234")
		assert.ErrorIs(t, err, ErrUnsupportedCountry)
	})

	t.Run("split-run template is an invariant violation", func(t *testing.T) {
		_, err := c.Decode("ZZ0212341234")
		assert.ErrorIs(t, err, ErrBadTemplate)
	})

	t.Run("validated template without a bank run is an invariant violation", func(t *testing.T) {
		_, err := c.Decode("QQ02123456781234")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadTemplate)
		assert.NotErrorIs(t, err, ErrUnsupportedCountry)
	})

	t.Run("grouped and lowercase spellings decode identically", func(t *testing.T) {
		compact, err := c.Decode("AT026000000001349870")
		require.NoError(t, err)

		grouped, err := c.Decode("AT02 6000 0000 0134 9870")
		require.NoError(t, err)
		assert.Equal(t, compact, grouped)

		lower, err := c.Decode("at026000000001349870")
		require.NoError(t, err)
		assert.Equal(t, compact, lower)
	})

	t.Run("too short to carry a country code", func(t *testing.T) {
		for _, in := range []string{"", "A", " "} {
			_, err := c.Decode(in)
			assert.ErrorIs(t, err, ErrUnsupportedCountry, "input %q", in)
		}
	})

	t.Run("absent optional fields stay absent", func(t *testing.T) {
		parsed, err := c.Decode("DE02120300000000202051")
		require.NoError(t, err)

		_, ok := parsed.Field(models.KeyBranchCode)
		assert.False(t, ok)
		_, ok = parsed.Field(models.KeyCurrencyCode)
		assert.False(t, ok)
	})

	t.Run("reserved zero positions verify through the checksum", func(t *testing.T) {
		parsed, err := c.Decode("TR330006100519786457841326")
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "00061", parsed.BankCode())
		assert.Equal(t, "0519786457841326", parsed.AccountNumber())

		// reserved positions never surface as fields
		for key := range parsed.Fields {
			assert.NotEmpty(t, key)
		}
	})

	t.Run("reserved positions are rebuilt from the template, not read back", func(t *testing.T) {
		// the checksum raw string takes literal zeros from the template,
		// so a non-zero byte in a reserved slot does not enter verification
		// and re-encoding restores the canonical zero
		parsed, err := c.Decode("TR330006150519786457841326")
		require.NoError(t, err)
		assert.True(t, parsed.Valid)

		rec, err := parsed.Record()
		require.NoError(t, err)
		out, err := c.Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, "TR330006100519786457841326", out)
	})

	t.Run("letters outside the country code make the checksum uncomputable", func(t *testing.T) {
		parsed, err := c.Decode("NL91ABNA0417164300")
		require.NoError(t, err)

		assert.False(t, parsed.Valid)
		assert.Contains(t, parsed.LastError, "not numeric")
		// structural extraction still succeeds
		assert.Equal(t, "ABNA", parsed.BankCode())
		assert.Equal(t, "0417164300", parsed.AccountNumber())
	})

	t.Run("every field code of a rich template is extracted", func(t *testing.T) {
		parsed, err := c.Decode("MU17BOMM0101101030300200000MUR")
		require.NoError(t, err)

		assert.Equal(t, "BOMM", parsed.Fields[models.KeyBICBankCode])
		assert.Equal(t, "01", parsed.Fields[models.KeyBankCode])
		assert.Equal(t, "01", parsed.Fields[models.KeyBranchCode])
		assert.Equal(t, "101030300200", parsed.Fields[models.KeyAccountNumber])
		assert.Equal(t, "MUR", parsed.Fields[models.KeyCurrencyCode])
	})
}

func TestEncode(t *testing.T) {
	c := newTestCodec()

	t.Run("german seed record", func(t *testing.T) {
		rec, err := models.NewAccountRecord("DE", "12030000", "0000202051")
		require.NoError(t, err)

		iban, err := c.Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, "DE02120300000000202051", iban)
	})

	t.Run("french record with optional fields", func(t *testing.T) {
		rec, err := models.NewAccountRecord("FR", "30027", "00020053701")
		require.NoError(t, err)
		require.NoError(t, rec.SetField(models.KeyBranchCode, "17533"))
		require.NoError(t, rec.SetField(models.KeyNationalCheckDigits, "59"))

		iban, err := c.Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, "FR7630027175330002005370159", iban)
	})

	t.Run("short values are left-zero-padded", func(t *testing.T) {
		rec, err := models.NewAccountRecord("AT", "60000", "1349870")
		require.NoError(t, err)

		iban, err := c.Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, "AT026000000001349870", iban)
	})

	t.Run("reserved positions are emitted as zeros", func(t *testing.T) {
		rec, err := models.NewAccountRecord("TR", "00061", "0519786457841326")
		require.NoError(t, err)

		iban, err := c.Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, "TR330006100519786457841326", iban)
	})

	t.Run("missing required field fails before checksum work", func(t *testing.T) {
		// the record also carries an overlong bank code; symmetry must
		// report the missing branch first, proving it runs ahead of
		// assembly and checksum arithmetic
		rec, err := models.NewAccountRecord("FR", "300270000000000000027", "00020053701")
		require.NoError(t, err)

		_, err = c.Encode(rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingField)
		assert.NotErrorIs(t, err, ErrValueTooLong)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, models.KeyBranchCode, fe.Key)
	})

	t.Run("extra field the country does not use", func(t *testing.T) {
		rec, err := models.NewAccountRecord("DE", "12030000", "0000202051")
		require.NoError(t, err)
		require.NoError(t, rec.SetField(models.KeyBranchCode, "123"))

		_, err = c.Encode(rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownField)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, models.KeyBranchCode, fe.Key)
	})

	t.Run("overlong value names the field and its width", func(t *testing.T) {
		rec, err := models.NewAccountRecord("AT", "600001", "1349870")
		require.NoError(t, err)

		_, err = c.Encode(rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValueTooLong)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, models.KeyBankCode, fe.Key)
		assert.Equal(t, 5, fe.Width)
	})

	t.Run("unknown country", func(t *testing.T) {
		rec, err := models.NewAccountRecord("XX", "123", "456")
		require.NoError(t, err)

		_, err = c.Encode(rec)
		assert.ErrorIs(t, err, ErrUnsupportedCountry)
	})

	t.Run("letters in field values cannot be checksummed", func(t *testing.T) {
		rec, err := models.NewAccountRecord("NL", "ABNA", "0417164300")
		require.NoError(t, err)

		_, err = c.Encode(rec)
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("generated length always matches the template", func(t *testing.T) {
		for _, cc := range []string{"AT", "DE", "FR", "TR", "CR", "HU", "CZ"} {
			rec, err := models.NewAccountRecord(cc, "1", "2")
			require.NoError(t, err)
			// satisfy each template's optional runs with width-safe values
			tpl := NormalizeTemplate(testFormats[cc])
			runs, err := tpl.FieldRuns(RunOptions{ExcludeCheckDigits: true})
			require.NoError(t, err)
			for _, run := range runs {
				key, err := run.Code.Key()
				require.NoError(t, err)
				if key == models.KeyBankCode || key == models.KeyAccountNumber {
					continue
				}
				require.NoError(t, rec.SetField(key, "1"))
			}

			iban, err := c.Encode(rec)
			require.NoError(t, err, "country %s", cc)
			assert.Len(t, iban, len(tpl), "country %s", cc)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	c := newTestCodec()

	// decode, derive a record, re-encode: the original IBAN comes back
	ibans := []string{
		"AT026000000001349870",
		"DE02120300000000202051",
		"FR7630027175330002005370159",
		"TR330006100519786457841326",
		"CR05015202001026284066",
		"HU42117730161111101800000000",
		"CZ6508000000192000145399",
	}

	for _, iban := range ibans {
		t.Run(iban[:2], func(t *testing.T) {
			parsed, err := c.Decode(iban)
			require.NoError(t, err)
			require.True(t, parsed.Valid, "lastError: %s", parsed.LastError)

			rec, err := parsed.Record()
			require.NoError(t, err)

			out, err := c.Encode(rec)
			require.NoError(t, err)
			assert.Equal(t, iban, out)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"german seed", "DE02120300000000202051", "DE02 1203 0000 0000 2020 51"},
		{"multiple of four", "BE68539007547034", "BE68 5390 0754 7034"},
		{"short remainder", "NO9386011117947", "NO93 8601 1117 947"},
		{"four or fewer stays as-is", "DE02", "DE02"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestDescribe(t *testing.T) {
	c := newTestCodec()

	t.Run("returns normalized template and ordered specs", func(t *testing.T) {
		tpl, specs, err := c.Describe("de")
		require.NoError(t, err)
		assert.Equal(t, "DEkkbbbbbbbbcccccccccc", tpl)
		require.Len(t, specs, 3)
		assert.Equal(t, models.KeyCheckDigits, specs[0].Key)
		assert.Equal(t, models.KeyBankCode, specs[1].Key)
		assert.Equal(t, models.KeyAccountNumber, specs[2].Key)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, _, err := c.Describe("XX")
		assert.ErrorIs(t, err, ErrUnsupportedCountry)
	})
}
