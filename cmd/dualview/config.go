// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type config struct {
	DRC        string `mapstructure:"drc"`
	TV         string `mapstructure:"tv"`
	Out        string `mapstructure:"out"`
	Layout     string `mapstructure:"layout"`
	OverlayDir string `mapstructure:"overlay-dir"`
	AA         int    `mapstructure:"aa"`
	LogLevel   string `mapstructure:"log-level"`
}

func defaultConfig() *config {
	return &config{
		Out:      "composite.png",
		AA:       1,
		LogLevel: "warn",
	}
}

// loadConfig merges the config file, DUALVIEW_* environment variables and
// the command's flags, in increasing priority.
func loadConfig(cfgFile string, cmd *cobra.Command) (*config, error) {
	cfg := defaultConfig()
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("dualview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DUALVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, err
		}
		if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *config) validate() error {
	if c.DRC == "" || c.TV == "" {
		return errors.New("both --drc and --tv are required")
	}
	switch c.AA {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("unsupported sample count %d", c.AA)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
