// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command dualview previews the dual-screen composite on the desktop.
//
// It feeds two still images through the compositor as one handheld frame
// and one TV frame, using the software driver, and writes the TV output:
//
//	dualview render --drc gamepad.png --tv tv.png --out composite.png
//	dualview render --layout pip.yaml --overlay-dir ./res ...
//	dualview defaults > layout.yaml
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/dualview/layout"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "dualview",
	Short:         "Dual-screen composite preview",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Composite a DRC and a TV image into the TV output",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile, cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return render(cfg)
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default layout as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return layout.Encode(cmd.OutOrStdout(), layout.Defaults())
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the configurable layout fields and their ranges",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range layout.Fields() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s [%d, %d]\n", f.Name, f.Bounds.Min, f.Bounds.Max)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s tv | drc\n", "foreground")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dualview.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	f := renderCmd.Flags()
	f.String("drc", "", "handheld frame image")
	f.String("tv", "", "TV frame image")
	f.String("out", "composite.png", "output PNG")
	f.String("layout", "", "layout YAML (default layout when empty)")
	f.String("overlay-dir", "", "directory with resource overrides")
	f.Int("aa", 1, "multisample count of the TV frame: 1, 2, 4 or 8")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dualview:", err)
		os.Exit(1)
	}
}
