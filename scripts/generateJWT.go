package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/dryack/gDiceTable/core/session"
	"github.com/spf13/cobra"
)

func generateJWTSecret(bytes int) (string, error) {
	secret := make([]byte, bytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("error generating random bytes: %w", err)
	}
	return hex.EncodeToString(secret), nil
}

func main() {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generateJWT",
		Short: "Print a new auth secret, or sign an upload token with --secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				s, err := generateJWTSecret(32)
				if err != nil {
					return err
				}
				fmt.Printf("GDICETABLE_AUTH_SECRET=%s\n", s)
				return nil
			}

			tm, err := session.NewTokenManager(secret, ttl)
			if err != nil {
				return err
			}
			token, err := tm.CreateAccessToken(subject, "admin")
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Hex secret to sign a token with")
	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
