// Package main provides a CLI tool for generating credentials for an
// auth-enabled ibanq server: API keys with their bcrypt hash, and dev JWTs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"ibanq/internal/auth"
	"ibanq/pkg/secrets"
)

// Dev signing key - matches config.go when IBANQ_JWT_SIGNING_KEY is not set
const devSigningKey = "dev-secret-key-change-in-production"

const defaultTokenTTL = time.Hour

type apikeyOutput struct {
	Key   string            `json:"key"`
	Hash  string            `json:"hash"`
	Usage map[string]string `json:"usage"`
}

type tokenOutput struct {
	Token     string            `json:"token"`
	Subject   string            `json:"subject"`
	ExpiresIn string            `json:"expires_in"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	apikeyCmd := flag.NewFlagSet("apikey", flag.ExitOnError)
	apikeyJSON := apikeyCmd.Bool("json", false, "Output as JSON")

	jwtCmd := flag.NewFlagSet("jwt", flag.ExitOnError)
	jwtSubject := jwtCmd.String("subject", "dev-user", "Token subject")
	jwtKey := jwtCmd.String("signing-key", devSigningKey, "HS256 signing key; must match the server's")
	jwtTTL := jwtCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	jwtJSON := jwtCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "apikey":
		apikeyCmd.Parse(os.Args[2:])
		generateAPIKey(*apikeyJSON)
	case "jwt":
		jwtCmd.Parse(os.Args[2:])
		generateJWT(*jwtSubject, *jwtKey, *jwtTTL, *jwtJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`keygen - Generate credentials for an auth-enabled ibanq server

WARNING: The default JWT signing key is the dev key and will NOT work
         against a production server. Only use for local development.

Usage:
  keygen <command> [flags]

Commands:
  apikey    Generate an API key and the bcrypt hash the server needs
  jwt       Generate an HS256 bearer token

Examples:
  # Mint a key, configure the hash, call with the key
  keygen apikey
  export IBANQ_AUTH_MODE=apikey IBANQ_API_KEY_HASH='<hash>'
  curl -H "X-API-Key: <key>" http://localhost:8080/v1/countries

  # Mint a dev token for a JWT-mode server
  keygen jwt -subject alice -ttl 8h

Use "keygen <command> -h" for more information about a command.`)
}

func generateAPIKey(jsonOutput bool) {
	key, err := secrets.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	hash, err := secrets.HashKey(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(apikeyOutput{
			Key:  key,
			Hash: hash,
			Usage: map[string]string{
				"server": "IBANQ_AUTH_MODE=apikey IBANQ_API_KEY_HASH='<hash>'",
				"client": "X-API-Key: <key>",
			},
		})
		return
	}

	fmt.Println("API Key")
	fmt.Println("=======")
	fmt.Printf("Key:  %s\n", key)
	fmt.Printf("Hash: %s\n", hash)
	fmt.Println()
	fmt.Println("Server configuration:")
	fmt.Printf("  export IBANQ_AUTH_MODE=apikey IBANQ_API_KEY_HASH='%s'\n", hash)
	fmt.Println()
	fmt.Println("Client usage:")
	fmt.Printf("  curl -H \"X-API-Key: %s\" http://localhost:8080/v1/countries\n", key)
	fmt.Println()
	fmt.Println("Store the key now; only the hash can be recovered from the server config.")
}

func generateJWT(subject, signingKey string, ttl time.Duration, jsonOutput bool) {
	svc := auth.NewJWTService(signingKey, ttl)
	token, err := svc.IssueToken(subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Subject:   subject,
			ExpiresIn: ttl.String(),
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Bearer Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/v1/countries")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
