// Command propertyctl is a terminal front end for the PropertyHub API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"propertyhub/internal/client"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5000"

// app carries the global flags and the lazily built client session
type app struct {
	apiURL      string
	sessionPath string
	timeout     time.Duration
	jsonOutput  bool

	session *client.Session
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "propertyctl",
		Short: "Manage your PropertyHub listings from the terminal",
		Long: `propertyctl talks to a PropertyHub server.

Sign in with 'register' or 'login'; the session token is kept in
~/.propertyhub/session.yaml until 'logout'. The 'loan' command runs the
mortgage calculator locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	apiURL := os.Getenv("PROPERTYHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", apiURL, "PropertyHub server URL (or set PROPERTYHUB_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.sessionPath, "session", "", "Session file (default: ~/.propertyhub/session.yaml)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.healthCmd(),
		a.propertiesCmd(),
		a.loanCmd(),
	)
	return rootCmd
}

func (a *app) init() error {
	if a.sessionPath == "" {
		path, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		a.sessionPath = path
	}

	session, err := client.NewSession(client.NewClient(a.apiURL), client.NewSessionStore(a.sessionPath))
	if err != nil {
		return err
	}
	a.session = session
	return nil
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *app) requireLogin() error {
	if !a.session.State().Auth.IsAuthenticated {
		return fmt.Errorf("not logged in; run 'propertyctl login' first")
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
