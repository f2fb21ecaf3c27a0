package dto

import "ibanq/internal/iban/models"

// DecodeResponse is the parse result for one IBAN. Fields maps field names
// to extracted values; a missing key means the country's format does not
// use that field.
type DecodeResponse struct {
	IBAN      string            `json:"iban"`
	Formatted string            `json:"formatted"`
	Country   string            `json:"country"`
	Fields    map[string]string `json:"fields"`
	Valid     bool              `json:"valid"`
	LastError string            `json:"last_error,omitempty"`
}

// NewDecodeResponse maps a parsed IBAN onto the wire shape.
func NewDecodeResponse(p *models.ParsedIBAN, formatted string) DecodeResponse {
	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[string(k)] = v
	}
	return DecodeResponse{
		IBAN:      p.IBAN,
		Formatted: formatted,
		Country:   p.CountryCode,
		Fields:    fields,
		Valid:     p.Valid,
		LastError: p.LastError,
	}
}

// EncodeResponse returns a generated IBAN in compact and display forms.
type EncodeResponse struct {
	IBAN      string `json:"iban"`
	Formatted string `json:"formatted"`
	Country   string `json:"country"`
}

// ValidationItem is the verdict for a single IBAN.
type ValidationItem struct {
	IBAN      string `json:"iban"`
	Valid     bool   `json:"valid"`
	LastError string `json:"last_error,omitempty"`
}

// NewValidationItem maps a domain validation result onto the wire shape.
func NewValidationItem(r models.ValidationResult) ValidationItem {
	return ValidationItem{
		IBAN:      r.IBAN,
		Valid:     r.Valid,
		LastError: r.LastError,
	}
}

// ValidateBatchResponse carries positional verdicts: results[i] answers
// the i-th requested IBAN.
type ValidateBatchResponse struct {
	Results []ValidationItem `json:"results"`
}

// NewValidateBatchResponse maps a slice of validation results.
func NewValidateBatchResponse(results []models.ValidationResult) ValidateBatchResponse {
	items := make([]ValidationItem, len(results))
	for i, r := range results {
		items[i] = NewValidationItem(r)
	}
	return ValidateBatchResponse{Results: items}
}

// CountryInfo is a single entry in the country listing.
type CountryInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// CountryListResponse lists every registered country.
type CountryListResponse struct {
	Countries []CountryInfo `json:"countries"`
	Count     int           `json:"count"`
}

// NewCountryListResponse maps the registry listing.
func NewCountryListResponse(countries []models.CountryInfo) CountryListResponse {
	out := make([]CountryInfo, len(countries))
	for i, c := range countries {
		out[i] = CountryInfo{Code: c.Code, Name: c.Name, Length: c.Length}
	}
	return CountryListResponse{Countries: out, Count: len(out)}
}

// FieldSpec describes one run of a country's format template. Reserved
// runs are always-zero filler and carry no key.
type FieldSpec struct {
	Key      string `json:"key,omitempty"`
	Start    int    `json:"start"`
	Length   int    `json:"length"`
	Reserved bool   `json:"reserved,omitempty"`
}

// CountryDetailResponse describes one country's IBAN format in full.
type CountryDetailResponse struct {
	CountryInfo
	Template string      `json:"template"`
	Fields   []FieldSpec `json:"fields"`
}

// NewCountryDetailResponse maps a country detail.
func NewCountryDetailResponse(d *models.CountryDetail) CountryDetailResponse {
	fields := make([]FieldSpec, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = FieldSpec{
			Key:      string(f.Key),
			Start:    f.Start,
			Length:   f.Length,
			Reserved: f.Reserved,
		}
	}
	return CountryDetailResponse{
		CountryInfo: CountryInfo{Code: d.Code, Name: d.Name, Length: d.Length},
		Template:    d.Template,
		Fields:      fields,
	}
}
