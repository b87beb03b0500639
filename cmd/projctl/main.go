// Command projctl manages projects on a project tracker server from the terminal.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/project-tracker/internal/client"
)

var version = "dev"

var errNotLoggedIn = errors.New("not logged in, run: projctl login")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	serverURL  string

	cfg    *Config
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "projctl",
		Short: "Track projects from the command line",
		Long: `projctl talks to a project tracker server. Log in once, then list,
create, update and delete your projects, or open the interactive board.

Configuration is read from ~/.config/projctl/config.yaml (server_url,
session_file, timeout) and PROJCTL_* environment variables.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/projctl/config.yaml)")
	root.PersistentFlags().StringVar(&a.serverURL, "server", "", "server URL, overrides server_url")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newTUICmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}

	c, err := client.New(cfg.ServerURL,
		client.WithTimeout(cfg.Timeout),
		client.WithStorage(client.NewFileStorage(cfg.SessionFile)),
	)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.client = c
	return nil
}

func (a *app) requireLogin() error {
	if !a.client.Authenticated() {
		return errNotLoggedIn
	}
	return nil
}
