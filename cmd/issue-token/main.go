package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Amorphous121/jobboard/pkg/jwt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "", "Path to JWT private key (RS256)")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret (HS256), defaults to $JWT_SECRET")
	userID := flag.String("user", "", "User ID the token identifies (required)")
	email := flag.String("email", "", "Email for the token")
	issuer := flag.String("issuer", "jobboard", "JWT issuer")
	expires := flag.Duration("exp", 7*24*time.Hour, "Token lifetime")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	generateKeys := flag.Bool("generate-keys", false, "Write a new RSA key pair to -key and -pub and exit")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Public key path for -generate-keys")

	flag.Parse()

	if *generateKeys {
		if *privateKeyPath == "" {
			*privateKeyPath = "./keys/private.pem"
		}
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         *secret,
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		Expiration:     *expires,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nPass -secret, set JWT_SECRET, or point -key at a private key.\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{
		UserID: *userID,
		Email:  *email,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"success":    true,
			"token":      token,
			"expires_in": int(expires.Seconds()),
			"user_id":    *userID,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	fmt.Println("Token Generated")
	fmt.Println("===============")
	fmt.Printf("User ID:  %s\n", *userID)
	if *email != "" {
		fmt.Printf("Email:    %s\n", *email)
	}
	fmt.Printf("Expires:  %s\n", time.Now().Add(*expires).Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -X POST -H 'Authorization: Bearer <token>' http://localhost:3000/api/v1/jobs")
}
