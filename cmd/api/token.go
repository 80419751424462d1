package main

import (
	"errors"
	"fmt"
	"time"

	"workorder-approval/internal/adapter/middleware"
	"workorder-approval/internal/domain/workflow"

	"github.com/spf13/cobra"
)

// newTokenCmd mints bearer tokens for local testing against JWT_SECRET.
func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.JWTSecret == "" {
				return errors.New("missing JWT_SECRET")
			}
			r, err := workflow.ParseRole(role)
			if err != nil {
				return err
			}
			tok, err := middleware.SignToken([]byte(a.cfg.JWTSecret), subject, r, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "caller id (token subject)")
	cmd.Flags().StringVar(&role, "role", "", "Submitter, EHS, Manager or Admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
