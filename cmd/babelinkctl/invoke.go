package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newInvokeCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Invoke any backend command with raw JSON arguments",
		Example: `  babelinkctl invoke get_system_info
  babelinkctl invoke translate_text '{"request":{"text":"hola","from":"es","to":"en"}}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var body any
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("arguments are not valid JSON: %s", args[1])
				}
				body = json.RawMessage(args[1])
			}
			raw, err := c.Invoke(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}
}

func newCommandsCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands the backend serves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			names, err := c.Commands(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
