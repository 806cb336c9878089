package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a bearer token for the recommendation endpoints",
	Long:  "Signs an HS256 token for subject with JWT_SECRET, for service accounts and local testing.",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := server.NewJWTService(&cfg.Auth).GenerateToken(args[0])
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
