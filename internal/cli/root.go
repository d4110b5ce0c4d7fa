// Package cli is the command-line shell over the client core. Every
// invocation probes for a session and signs in with the configured
// credentials when none is found.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/proelectric/proadmin/internal/app"
	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/service"
	"github.com/proelectric/proadmin/internal/forms"
	"github.com/proelectric/proadmin/internal/pkg/config"
)

type shell struct {
	cfg config.APIConfig
	log zerolog.Logger

	user        string
	password    string
	envPassword string
	jsonOut     bool

	client *app.Client
}

// NewRootCmd builds the proadmin command tree. creds seed the --user and
// --password defaults, so PROADMIN_USER and PROADMIN_PASSWORD keep the
// password out of the process list.
func NewRootCmd(cfg config.APIConfig, creds config.CredentialsConfig, log zerolog.Logger) *cobra.Command {
	sh := &shell{cfg: cfg, log: log, envPassword: creds.Password}

	root := &cobra.Command{
		Use:           "proadmin",
		Short:         "Back-office client for PROELECTRIC",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sh.connect(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&sh.cfg.URL, "api-url", cfg.URL, "backend base URL")
	f.DurationVar(&sh.cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	f.StringVarP(&sh.user, "user", "u", creds.User, "login used when no session exists (env PROADMIN_USER)")
	f.StringVarP(&sh.password, "password", "p", "", "password used when no session exists; prefer env PROADMIN_PASSWORD")
	f.BoolVar(&sh.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		sh.whoamiCmd(),
		sh.logoutCmd(),
		sh.dashboardCmd(),
		sh.ordersCmd(),
		sh.usersCmd(),
		sh.financeCmd(),
		sh.broadcastCmd(),
	)
	return root
}

// ExecuteContext runs the command tree with args.
func ExecuteContext(ctx context.Context, cfg config.APIConfig, creds config.CredentialsConfig, log zerolog.Logger, args []string) error {
	root := NewRootCmd(cfg, creds, log)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (sh *shell) connect(ctx context.Context) error {
	client, err := app.NewClient(sh.cfg, sh.log)
	if err != nil {
		return err
	}
	sh.client = client

	snap := client.Session.Init(ctx)
	if snap.State == service.StateAuthenticated || sh.user == "" {
		return nil
	}
	password := sh.password
	if password == "" {
		password = sh.envPassword
	}
	if err := forms.Login(sh.user, password); err != nil {
		return err
	}
	_, err = client.Session.Login(ctx, sh.user, password)
	return err
}

// requireSession fails with the session-expired message when neither the
// probe nor the sign-in produced a session.
func (sh *shell) requireSession() (*domain.Session, error) {
	snap := sh.client.Session.Snapshot()
	if service.Route(snap) != service.FlowApp {
		return nil, domain.NewSessionExpired()
	}
	return snap.Session, nil
}

func (sh *shell) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := sh.requireSession()
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), sess.User)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) #%d\n", sess.DisplayName, sess.Role, sess.UserID)
			return nil
		},
	}
}

func (sh *shell) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh.client.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func (sh *shell) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show recent orders and staff in one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := sh.requireSession()
			if err != nil {
				return err
			}
			dash, err := sh.client.Gateway.LoadDashboard(cmd.Context(), sess.Role)
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), dash)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orders (%d)\n", len(dash.Orders))
			printOrders(out, dash.Orders)
			fmt.Fprintf(out, "\nStaff (%d)\n", len(dash.Users))
			printUsers(out, dash.Users)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
