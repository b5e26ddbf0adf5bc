package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/translation"
)

func newCaptureCmd(newClient clientFactory) *cobra.Command {
	var (
		region capture.Region
		out    string
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a screen region as PNG",
		Long: `Capture a screen region. The PNG is written to --out, or printed as
base64 when --out is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			png, err := c.CaptureScreen(cmd.Context(), region)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), png)
				return err
			}
			data, err := base64.StdEncoding.DecodeString(png)
			if err != nil {
				return fmt.Errorf("decode capture: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(data), out)
			return err
		},
	}
	f := cmd.Flags()
	f.Float64Var(&region.X, "x", 0, "left edge in screen points")
	f.Float64Var(&region.Y, "y", 0, "top edge in screen points")
	f.Float64Var(&region.Width, "width", 0, "region width")
	f.Float64Var(&region.Height, "height", 0, "region height")
	f.StringVarP(&out, "out", "o", "", "write the PNG to this file")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func newOCRCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ocr <image-file>",
		Short: "Extract text from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			text, err := c.ExtractText(cmd.Context(), base64.StdEncoding.EncodeToString(data))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newTranslateCmd(newClient clientFactory) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:     "translate <text>",
		Short:   "Translate text",
		Example: `  babelinkctl translate --from es --to en "hola mundo"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			text, err := c.TranslateText(cmd.Context(), translation.Request{
				Text: strings.Join(args, " "),
				From: from,
				To:   to,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source language code")
	cmd.Flags().StringVar(&to, "to", "", "target language code")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newSpeakCmd(newClient clientFactory) *cobra.Command {
	var v speech.VoiceSettings
	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Speak text aloud and wait for playback to end",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			return c.SpeakText(cmd.Context(), strings.Join(args, " "), v)
		},
	}
	f := cmd.Flags()
	f.StringVar(&v.Gender, "gender", speech.GenderFemale, "voice gender (male or female)")
	f.Float64Var(&v.Speed, "speed", 1, "speech rate multiplier")
	f.StringVar(&v.Language, "language", "en", "language code")
	return cmd
}
