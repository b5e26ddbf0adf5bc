package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/babelink/app"
	"github.com/kbukum/babelink/auth/jwt"
	"github.com/kbukum/babelink/config"
)

func newTokenCmd() *cobra.Command {
	var (
		configFile string
		subject    string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token from the backend's auth secret",
		Long: `Mint a bearer token signed with server.auth.secret from the backend
configuration. The same config.yml and BABELINK_* variables the backend
reads are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.LoaderOption
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			cfg, err := app.Load(opts...)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if !cfg.Server.Auth.Enabled() {
				return errors.New("auth is disabled: set server.auth.secret or BABELINK_SERVER_AUTH_SECRET")
			}
			svc, err := jwt.NewCommandService(cfg.Server.Auth.JWT())
			if err != nil {
				return err
			}
			token, err := svc.Issue(jwt.NewClaims(subject))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "backend config file")
	cmd.Flags().StringVar(&subject, "subject", "babelinkctl", "token subject")
	return cmd
}
