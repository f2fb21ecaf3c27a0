// Package main provides the ibanq command line front end: decode, generate
// and inspect IBANs without running the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"ibanq/internal/epcqr"
	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/models"
	"ibanq/internal/iban/registry"
	"ibanq/internal/iban/service"
	"ibanq/internal/platform/middleware"
)

func main() {
	decodeCmd := flag.NewFlagSet("decode", flag.ExitOnError)
	decodeJSON := decodeCmd.Bool("json", false, "Output as JSON")

	encodeCmd := flag.NewFlagSet("encode", flag.ExitOnError)
	encodeCountry := encodeCmd.String("country", "", "Two-letter country code (required)")
	encodeBank := encodeCmd.String("bank", "", "Bank code (required)")
	encodeAccount := encodeCmd.String("account", "", "Account number (required)")
	encodeFields := fieldFlags{}
	encodeCmd.Var(&encodeFields, "field", "Extra field as key=value (repeatable), e.g. -field branchCode=17533")
	encodeJSON := encodeCmd.Bool("json", false, "Output as JSON")

	countriesCmd := flag.NewFlagSet("countries", flag.ExitOnError)
	countriesJSON := countriesCmd.Bool("json", false, "Output as JSON")

	qrCmd := flag.NewFlagSet("qr", flag.ExitOnError)
	qrOut := qrCmd.String("out", "qr.png", "Output PNG path")
	qrName := qrCmd.String("name", "", "Beneficiary name embedded in the payment code")
	qrSize := qrCmd.Int("size", 0, "PNG edge length in pixels (default 256)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	app := newApp()

	switch os.Args[1] {
	case "decode":
		decodeCmd.Parse(os.Args[2:])
		if decodeCmd.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "decode expects exactly one IBAN argument")
			os.Exit(1)
		}
		app.decode(decodeCmd.Arg(0), *decodeJSON)
	case "encode":
		encodeCmd.Parse(os.Args[2:])
		app.encode(*encodeCountry, *encodeBank, *encodeAccount, encodeFields, *encodeJSON)
	case "countries":
		countriesCmd.Parse(os.Args[2:])
		if countriesCmd.NArg() > 0 {
			app.countryDetail(countriesCmd.Arg(0), *countriesJSON)
		} else {
			app.countries(*countriesJSON)
		}
	case "qr":
		qrCmd.Parse(os.Args[2:])
		if qrCmd.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "qr expects exactly one IBAN argument")
			os.Exit(1)
		}
		app.qr(qrCmd.Arg(0), *qrName, *qrOut, *qrSize)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ibanq - decode, generate and inspect IBANs

Usage:
  ibanq <command> [flags]

Commands:
  decode     Parse an IBAN into its national fields and verify the checksum
  encode     Build an IBAN from country, bank code and account number
  countries  List supported countries, or show one country's format
  qr         Render a SEPA payment QR code for an IBAN

Examples:
  # Decode and verify
  ibanq decode DE02120300000000202051

  # Generate a German IBAN
  ibanq encode -country DE -bank 12030000 -account 0000202051

  # French RIB needs a branch code and national check digits
  ibanq encode -country FR -bank 30027 -account 00020053701 \
      -field branchCode=17533 -field nationalCheckDigits=59

  # Show the Czech format layout
  ibanq countries CZ

  # Payment QR code
  ibanq qr DE02120300000000202051 -name "ACME GmbH" -out payment.png

Use "ibanq <command> -h" for more information about a command.`)
}

// app bundles the service and a request-scoped context. A fresh request ID
// per invocation keeps CLI operations correlated in logs the same way HTTP
// requests are.
type app struct {
	svc *service.Service
	ctx context.Context
}

func newApp() *app {
	// The CLI reports failures on stderr itself; service logs stay off.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.New()
	svc := service.New(codec.New(reg), reg, logger,
		service.WithQREncoder(epcqr.New()),
	)
	return &app{
		svc: svc,
		ctx: middleware.WithRequestID(context.Background(), uuid.NewString()),
	}
}

type fieldOutput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type decodeOutput struct {
	IBAN        string        `json:"iban"`
	Formatted   string        `json:"formatted"`
	Country     string        `json:"country"`
	CountryName string        `json:"country_name,omitempty"`
	Fields      []fieldOutput `json:"fields"`
	Valid       bool          `json:"valid"`
	LastError   string        `json:"last_error,omitempty"`
}

func (a *app) decode(iban string, jsonOutput bool) {
	parsed, err := a.svc.Decode(a.ctx, iban)
	if err != nil {
		fail(err)
	}

	countryName, rows := a.fieldRows(parsed)

	if jsonOutput {
		printJSON(decodeOutput{
			IBAN:        parsed.IBAN,
			Formatted:   codec.Format(parsed.IBAN),
			Country:     parsed.CountryCode,
			CountryName: countryName,
			Fields:      rows,
			Valid:       parsed.Valid,
			LastError:   parsed.LastError,
		})
		return
	}

	fmt.Println("IBAN Decode")
	fmt.Println("===========")
	fmt.Printf("IBAN:     %s\n", codec.Format(parsed.IBAN))
	if countryName != "" {
		fmt.Printf("Country:  %s (%s)\n", parsed.CountryCode, countryName)
	} else {
		fmt.Printf("Country:  %s\n", parsed.CountryCode)
	}
	fmt.Println()
	for _, row := range rows {
		fmt.Printf("  %-22s %s\n", row.Key, row.Value)
	}
	fmt.Println()
	if parsed.Valid {
		fmt.Println("Valid:    yes")
	} else {
		fmt.Printf("Valid:    no (%s)\n", parsed.LastError)
	}
}

// fieldRows returns the parsed fields in template order, which is how bank
// statements present them. Falls back to map order if the format lookup
// fails, which cannot happen for a country that just decoded.
func (a *app) fieldRows(parsed *models.ParsedIBAN) (string, []fieldOutput) {
	detail, err := a.svc.CountryDetail(a.ctx, parsed.CountryCode)
	if err != nil {
		rows := make([]fieldOutput, 0, len(parsed.Fields))
		for k, v := range parsed.Fields {
			rows = append(rows, fieldOutput{Key: string(k), Value: v})
		}
		return "", rows
	}

	rows := make([]fieldOutput, 0, len(detail.Fields))
	for _, spec := range detail.Fields {
		if spec.Reserved {
			continue
		}
		if v, ok := parsed.Fields[spec.Key]; ok {
			rows = append(rows, fieldOutput{Key: string(spec.Key), Value: v})
		}
	}
	return detail.Name, rows
}

type encodeOutput struct {
	IBAN      string `json:"iban"`
	Formatted string `json:"formatted"`
	Country   string `json:"country"`
}

func (a *app) encode(country, bank, account string, extra fieldFlags, jsonOutput bool) {
	if country == "" || bank == "" || account == "" {
		fmt.Fprintln(os.Stderr, "encode requires -country, -bank and -account")
		os.Exit(1)
	}

	rec, err := models.NewAccountRecord(country, bank, account)
	if err != nil {
		fail(err)
	}
	for key, value := range extra {
		if err := rec.SetField(models.FieldKey(key), value); err != nil {
			fail(err)
		}
	}

	iban, err := a.svc.Encode(a.ctx, rec)
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printJSON(encodeOutput{
			IBAN:      iban,
			Formatted: codec.Format(iban),
			Country:   rec.CountryCode(),
		})
		return
	}

	fmt.Println("IBAN Encode")
	fmt.Println("===========")
	fmt.Printf("Country:  %s\n", rec.CountryCode())
	fmt.Println()
	fmt.Println(codec.Format(iban))
}

type countryOutput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

func (a *app) countries(jsonOutput bool) {
	infos, err := a.svc.Countries(a.ctx)
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		out := make([]countryOutput, 0, len(infos))
		for _, c := range infos {
			out = append(out, countryOutput{Code: c.Code, Name: c.Name, Length: c.Length})
		}
		printJSON(out)
		return
	}

	fmt.Println("Supported countries")
	fmt.Println("===================")
	for _, c := range infos {
		fmt.Printf("%s  %-26s length %d\n", c.Code, c.Name, c.Length)
	}
	fmt.Printf("\n%d countries\n", len(infos))
}

type fieldSpecOutput struct {
	Key      string `json:"key,omitempty"`
	Start    int    `json:"start"`
	Length   int    `json:"length"`
	Reserved bool   `json:"reserved,omitempty"`
}

type countryDetailOutput struct {
	countryOutput
	Template string            `json:"template"`
	Fields   []fieldSpecOutput `json:"fields"`
}

func (a *app) countryDetail(code string, jsonOutput bool) {
	detail, err := a.svc.CountryDetail(a.ctx, code)
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		out := countryDetailOutput{
			countryOutput: countryOutput{Code: detail.Code, Name: detail.Name, Length: detail.Length},
			Template:      detail.Template,
			Fields:        make([]fieldSpecOutput, 0, len(detail.Fields)),
		}
		for _, spec := range detail.Fields {
			out.Fields = append(out.Fields, fieldSpecOutput{
				Key:      string(spec.Key),
				Start:    spec.Start,
				Length:   spec.Length,
				Reserved: spec.Reserved,
			})
		}
		printJSON(out)
		return
	}

	fmt.Printf("%s - %s\n", detail.Code, detail.Name)
	fmt.Println(strings.Repeat("=", len(detail.Code)+len(detail.Name)+3))
	fmt.Printf("Length:   %d\n", detail.Length)
	fmt.Printf("Template: %s\n", codec.Format(detail.Template))
	fmt.Println()
	for _, spec := range detail.Fields {
		name := string(spec.Key)
		if spec.Reserved {
			name = "(reserved zeros)"
		}
		fmt.Printf("  %-22s position %2d, width %2d\n", name, spec.Start, spec.Length)
	}
}

func (a *app) qr(iban, name, out string, size int) {
	png, err := a.svc.GenerateQR(a.ctx, iban, name, size)
	if err != nil {
		fail(err)
	}

	if err := os.WriteFile(out, png, 0o644); err != nil {
		fail(fmt.Errorf("write %s: %w", out, err))
	}

	fmt.Printf("wrote %s (%d bytes)\n", out, len(png))
}

// fieldFlags collects repeated -field key=value flags.
type fieldFlags map[string]string

func (f fieldFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f fieldFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	f[key] = value
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
