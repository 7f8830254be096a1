// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// softhub - a terminal client for the IUST software center.
//
// Usage:
//
//	softhub                 Start the TUI
//	softhub list            List software
//	softhub show <slug>     Show one entry
//	softhub ask "question"  Ask the assistant
//	softhub help            Everything else
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/iust/softhub/internal/assistant"
	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/cli"
	"github.com/iust/softhub/internal/config"
	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/logging"
	"github.com/iust/softhub/internal/prefs"
	"github.com/iust/softhub/internal/ui/app"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fail(cmd, args, err)
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	}

	cfg, cfgErr := config.Load()
	applyFlags(cfg, cmd, args)
	if err := cfg.Validate(); err != nil {
		fail(cmd, args, err)
		return cli.ExitFailure
	}
	config.SetGlobal(cfg)

	log, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		File:        cfg.Logging.File,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		log = logging.Nop()
	}
	defer log.Sync()
	if cfgErr != nil {
		log.Warn("config load failed, using defaults", "error", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle := locale.For(cfg.UI.Locale)
	catalogClient := catalog.NewClient(&catalog.ClientConfig{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.CatalogTimeout(),
	}, log)
	helper := newAssistant(ctx, cfg, bundle, log)

	var store prefs.Store
	fileStore, err := prefs.NewFileStore("")
	if err != nil {
		log.Warn("preferences unavailable, using memory", "error", err)
		store = prefs.NewMemoryStore()
	} else {
		store = fileStore
	}

	if cmd == cli.CmdTUI {
		err = runTUI(ctx, catalogClient, helper, bundle, store, log)
	} else {
		configPath, _ := config.ConfigPathTOML()
		err = cli.Run(ctx, &cli.Env{
			Config:      cfg,
			ConfigPath:  configPath,
			Catalog:     catalogClient,
			Assistant:   helper,
			Bundle:      bundle,
			Store:       store,
			DetectDark:  termenv.HasDarkBackground,
			Log:         log,
			In:          os.Stdin,
			Out:         os.Stdout,
			Err:         os.Stderr,
			Interactive: cli.IsTTY(),
			Color:       cli.ColorsEnabled(),
		}, cmd, args)
	}

	if err != nil {
		log.Error("command failed", "command", cmd.String(), "error", err)
		fail(cmd, args, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// applyFlags layers the global flags over the loaded configuration.
func applyFlags(cfg *config.Config, cmd cli.Command, args cli.Args) {
	if args.API != "" {
		cfg.Catalog.BaseURL = args.API
	}
	if args.Locale != "" {
		cfg.UI.Locale = args.Locale
	}
	cfg.SetDefaults()
	if args.Verbose {
		cfg.Logging.Level = "debug"
		// Outside the TUI the terminal is free for log output.
		if cmd != cli.CmdTUI {
			cfg.Logging.File = ""
			cfg.Logging.Development = true
		}
	}
}

// newAssistant builds the assistant client. Without a usable key it still
// answers, with the locale's missing-key message.
func newAssistant(ctx context.Context, cfg *config.Config, bundle *locale.Bundle, log *logging.Logger) *assistant.Client {
	gen, err := assistant.NewGenerator(ctx, assistant.Config{
		Provider: cfg.Assistant.Provider,
		Model:    cfg.Assistant.Model,
		APIKey:   cfg.Assistant.APIKey,
		BaseURL:  cfg.Assistant.BaseURL,
		Timeout:  cfg.AssistantTimeout(),
	})
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		log.Info("assistant disabled, no API key")
	case err != nil:
		log.Warn("assistant unavailable", "provider", cfg.Assistant.Provider, "error", err)
		gen = nil
	}
	return assistant.NewClient(gen, bundle, log)
}

func runTUI(ctx context.Context, src app.CatalogSource, helper *assistant.Client, bundle *locale.Bundle, store prefs.Store, log *logging.Logger) error {
	if !cli.IsStdoutTTY() || !cli.IsTTY() {
		return &cli.UsageError{Msg: "the TUI needs a terminal; try 'softhub list' or 'softhub help'"}
	}
	m := app.New(ctx, app.Options{
		Catalog:    src,
		Assistant:  helper,
		Bundle:     bundle,
		Store:      store,
		DetectDark: termenv.HasDarkBackground,
		Logger:     log,
	})
	return app.Run(ctx, m)
}

// fail reports err on stderr, or as a JSON envelope on stdout in JSON mode.
func fail(cmd cli.Command, args cli.Args, err error) {
	w := os.Stderr
	if args.JSON {
		w = os.Stdout
	}
	cli.DisplayError(w, cmd.String(), err, args.JSON)
}
