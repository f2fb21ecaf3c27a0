// Package epcqr renders SEPA credit transfer QR codes following the EPC
// quick-response code guidelines (EPC069-12), payload version 002. The
// payload carries only the beneficiary and the IBAN: the BIC line stays
// empty, allowed since version 002, and the amount is left out so the
// scanning app prompts the payer for it.
package epcqr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	serviceTag     = "BCD"
	version        = "002"
	charsetUTF8    = "1"
	identification = "SCT"

	// maxNameLength is the EPC cap on the beneficiary name element.
	maxNameLength = 70

	// DefaultSize is the rendered image edge in pixels when the caller
	// passes no size. MinSize and MaxSize bound explicit requests.
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// Generator renders payment QR codes. The zero value is not usable;
// construct with New.
type Generator struct {
	level qrcode.RecoveryLevel
}

// New returns a Generator using recovery level M, the level the EPC
// guidelines require.
func New() *Generator {
	return &Generator{level: qrcode.Medium}
}

// Payload builds the text content of an EPC QR code. Elements are joined
// with line feeds; trailing optional elements are omitted entirely, which
// the guidelines permit.
func Payload(beneficiary, iban string) (string, error) {
	name := strings.TrimSpace(beneficiary)
	if name == "" {
		return "", fmt.Errorf("beneficiary name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("beneficiary name exceeds %d characters", maxNameLength)
	}
	if strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("beneficiary name must not contain line breaks")
	}

	compact := strings.ToUpper(strings.Join(strings.Fields(iban), ""))
	if compact == "" {
		return "", fmt.Errorf("iban is required")
	}

	// Empty fifth line is the omitted BIC.
	lines := []string{serviceTag, version, charsetUTF8, identification, "", name, compact}
	return strings.Join(lines, "\n"), nil
}

// PaymentPNG renders the payload for beneficiary and iban as a square PNG
// of the given edge length. Sizes outside [MinSize, MaxSize] are clamped;
// zero or negative means DefaultSize.
func (g *Generator) PaymentPNG(beneficiary, iban string, size int) ([]byte, error) {
	payload, err := Payload(beneficiary, iban)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = DefaultSize
	}
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	png, err := qrcode.Encode(payload, g.level, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
