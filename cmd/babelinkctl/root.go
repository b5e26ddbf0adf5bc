package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbukum/babelink/client"
	"github.com/kbukum/babelink/version"
)

const (
	flagURL     = "url"
	flagToken   = "token"
	flagTimeout = "timeout"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BABELINKCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "babelinkctl",
		Short: "Invoke Babelink backend commands",
		Long: `babelinkctl talks to a running babelink backend over its loopback
command API. Every subcommand maps to one backend command.

The backend address and token can also be set with BABELINKCTL_URL and
BABELINKCTL_TOKEN.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String(flagURL, client.DefaultBaseURL, "backend base URL")
	pf.String(flagToken, "", "bearer token for a backend with auth enabled")
	pf.Duration(flagTimeout, client.DefaultTimeout, "per-call timeout")
	_ = v.BindPFlags(pf)

	newClient := func() (*client.Client, error) {
		return client.New(client.Config{
			BaseURL: v.GetString(flagURL),
			Token:   v.GetString(flagToken),
			Timeout: v.GetDuration(flagTimeout),
		})
	}

	rootCmd.AddCommand(
		newInvokeCmd(newClient),
		newCommandsCmd(newClient),
		newCaptureCmd(newClient),
		newOCRCmd(newClient),
		newTranslateCmd(newClient),
		newSpeakCmd(newClient),
		newPermissionsCmd(newClient),
		newSysInfoCmd(newClient),
		newTokenCmd(),
	)
	return rootCmd
}

// clientFactory builds a client from the persistent flags at run time.
type clientFactory func() (*client.Client, error)
