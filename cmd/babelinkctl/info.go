package main

import (
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPermissionsCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "Show screen-capture and microphone permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			flags, err := c.CheckPermissions(cmd.Context())
			if err != nil {
				return err
			}
			rows := make(map[string]string, len(flags))
			for k, granted := range flags {
				rows[k] = strconv.FormatBool(granted)
			}
			return renderKeyValues(cmd.OutOrStdout(), "Permission", "Granted", rows)
		},
	}
}

func newSysInfoCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "sysinfo",
		Short: "Show platform and host information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			info, err := c.GetSystemInfo(cmd.Context())
			if err != nil {
				return err
			}
			return renderKeyValues(cmd.OutOrStdout(), "Key", "Value", info)
		},
	}
}

// renderKeyValues prints m as a two-column table sorted by key.
func renderKeyValues(w io.Writer, keyHeader, valueHeader string, m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	table := tablewriter.NewWriter(w)
	table.Header(keyHeader, valueHeader)
	for _, k := range keys {
		if err := table.Append([]string{k, m[k]}); err != nil {
			return err
		}
	}
	return table.Render()
}
