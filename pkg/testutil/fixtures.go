package testutil

import (
	"ibanq/internal/iban/models"
)

// ValidIBANs maps country code to a published sample IBAN that decodes
// with a verifying checksum. All entries have fully numeric account data;
// countries whose bank codes contain letters cannot be checksummed by the
// engine and make poor general-purpose fixtures.
var ValidIBANs = map[string]string{
	"AT": "AT611904300234573201",
	"BE": "BE68539007547034",
	"CH": "CH9300762011623852957",
	"CZ": "CZ6508000000192000145399",
	"DE": "DE89370400440532013000",
	"ES": "ES9121000418450200051332",
	"HU": "HU42117730161111101800000000",
	"PL": "PL61109010140000071219812874",
	"PT": "PT50000201231234567890154",
	"TR": "TR330006100519786457841326",
}

// FixtureCountries lists the ValidIBANs keys in stable order so tests can
// index them deterministically.
var FixtureCountries = []string{"AT", "BE", "CH", "CZ", "DE", "ES", "HU", "PL", "PT", "TR"}

// RecordBuilder provides a fluent interface for building account records.
type RecordBuilder struct {
	country string
	bank    string
	account string
	fields  map[models.FieldKey]string
}

// NewRecordBuilder creates a RecordBuilder preloaded with the German sample
// account. Values pad left with zeros at encode time, so short forms are fine.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		country: "DE",
		bank:    "37040044",
		account: "532013000",
		fields:  map[models.FieldKey]string{},
	}
}

func (b *RecordBuilder) WithCountry(code string) *RecordBuilder {
	b.country = code
	return b
}

func (b *RecordBuilder) WithBank(bankCode string) *RecordBuilder {
	b.bank = bankCode
	return b
}

func (b *RecordBuilder) WithAccount(accountNumber string) *RecordBuilder {
	b.account = accountNumber
	return b
}

func (b *RecordBuilder) WithField(key models.FieldKey, value string) *RecordBuilder {
	b.fields[key] = value
	return b
}

// Build assembles the record, surfacing the same validation errors callers
// of models.NewAccountRecord would see.
func (b *RecordBuilder) Build() (*models.AccountRecord, error) {
	rec, err := models.NewAccountRecord(b.country, b.bank, b.account)
	if err != nil {
		return nil, err
	}
	for key, value := range b.fields {
		if err := rec.SetField(key, value); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
