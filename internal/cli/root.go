// Package cli wires the admin commands to the dash controller and the API
// client. Commands stay thin; all category behavior lives in internal/dash
// and internal/grocer.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/avikko/grocer-admin/internal/config"
	"github.com/avikko/grocer-admin/internal/dash"
	"github.com/avikko/grocer-admin/internal/grocer"
	"github.com/avikko/grocer-admin/internal/session"
)

// app bundles everything a command needs. Built once per invocation in the
// root command's PersistentPreRunE.
type app struct {
	client     *grocer.Client
	store      session.Store
	controller *dash.Controller
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "grocer-admin",
	Short: "Admin tool for the grocery app's category tree",
	Long: help(`
		grocer-admin manages the grocery application's product categories:
		parent categories, sub-categories and the links between them.

		All data lives on the remote API. The tool keeps a session token in a
		local encrypted store; run "grocer-admin login" first.
	`),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			current.close()
		}
	},
}

func newApp() (*app, error) {
	store, err := session.NewSQLiteStore(config.DBPath(), session.DeriveKey(config.TokenKey()))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	token := ""
	profile, err := store.Get(session.DefaultProfileKey)
	if err != nil {
		store.Close()
		return nil, err
	}
	if profile != nil {
		token = profile.Token
	}

	client := grocer.NewClient(grocer.ClientOpts{
		BaseURL: config.BaseURL(),
		Token:   token,
	})

	return &app{
		client:     client,
		store:      store,
		controller: dash.NewController(client),
	}, nil
}

func (a *app) close() {
	_ = a.store.Close()
}

// help dedents and trims a long description so command literals can stay
// indented with the code.
func help(s string) string {
	return strings.TrimSpace(dedent.Dedent(s))
}

// Execute runs the root command. Returns a non-nil error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		otpCmd,
		forgotPasswordCmd,
		categoriesCmd,
	)
}

// surfaceErr formats an API error the way the admin screens word them.
func surfaceErr(err error) error {
	if grocer.IsNetworkError(err) {
		return fmt.Errorf("could not reach the server, check your connection")
	}
	return err
}

func printf(format string, a ...any) {
	fmt.Fprintf(os.Stdout, format, a...)
}
