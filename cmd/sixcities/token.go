package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sixcities/cmd/internal/auth/session"
	"sixcities/cmd/security/token"
)

// errTokenRejected is returned by inspect after the reason has been printed.
var errTokenRejected = errors.New("token rejected")

type issueConfig struct {
	subject string
	email   string
	ttl     time.Duration
}

// NewTokenCmd creates the token command group.
// Both subcommands read SIXCITIES_AUTH_SECRET and SIXCITIES_AUTH_TOKEN_PROFILE like the server.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect session tokens",
	}
	cmd.AddCommand(newTokenIssueCmd())
	cmd.AddCommand(newTokenInspectCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	cfg := &issueConfig{}

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a token for a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTokenIssue(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.subject, "subject", "", "subject (user) id")
	cmd.Flags().StringVar(&cfg.email, "email", "", "email claim")
	cmd.Flags().DurationVar(&cfg.ttl, "ttl", 0, "token lifetime (default: SIXCITIES_AUTH_TOKEN_TTL or 24h)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runTokenIssue(cmd *cobra.Command, cfg *issueConfig) error {
	svc, err := sessionFromEnv()
	if err != nil {
		return err
	}

	ttl := cfg.ttl
	if ttl <= 0 {
		ttl = svc.TTL()
	}

	issued, err := svc.IssueTokenTTL(strings.TrimSpace(cfg.subject), strings.TrimSpace(cfg.email), ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), issued.Token)
	cmd.PrintErrf("expires at %s\n", issued.ExpiresAt.Format(time.RFC3339))
	return nil
}

type inspectOutput struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason"`
	SubjectID string `json:"subjectId,omitempty"`
	Email     string `json:"email,omitempty"`
}

func newTokenInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and print its claims or the rejection reason",
		Long: `Verify a token with the configured secret and profile. Unlike the HTTP API,
which answers every failure with the same 401, this prints the internal reason.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenInspect(cmd, args[0])
		},
	}
}

func runTokenInspect(cmd *cobra.Command, raw string) error {
	svc, err := sessionFromEnv()
	if err != nil {
		return err
	}

	claims, verr := svc.ValidateToken(strings.TrimSpace(raw))
	out := inspectOutput{
		Valid:  verr == nil,
		Reason: token.Reason(verr),
	}
	if verr == nil {
		out.SubjectID = claims.SubjectID
		out.Email = claims.Email
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))

	if verr != nil {
		return errTokenRejected
	}
	return nil
}

func sessionFromEnv() (*session.Service, error) {
	cfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return session.NewService(cfg)
}
