// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

// Command sldc decodes SLDC (ECMA-321) compressed event payloads.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/sldc/internal/batch"
	"github.com/woozymasta/sldc/internal/config"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}

	setupLogging(cfg.CLI)

	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
		displayConfig(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx, cfg); err != nil {
		logrus.Errorf("sldc: %s", err)
		stop()
		os.Exit(1)
	}

	stop()
}

func run(ctx context.Context, cfg *config.Config) error {
	r, err := batch.New(cfg)
	if err != nil {
		return errors.Wrap(err, "unable to create batch runner")
	}

	if len(cfg.CLI.Inputs) == 0 {
		res, err := r.RunStream(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "error decoding stdin")
		}

		logrus.Debugf("decoded %d bytes into %d bytes", res.InBytes, res.OutBytes)

		return nil
	}

	summary, err := r.Run(ctx)
	if summary != nil {
		logrus.WithFields(logrus.Fields{
			"decoded": summary.Decoded,
			"failed":  summary.Failed,
			"in":      summary.InBytes,
			"out":     summary.OutBytes,
			"took":    summary.Took,
		}).Info("batch completed")
	}

	return err
}

func setupLogging(cli *config.CLI) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: cli.DisableColor,
		FullTimestamp: true,
	})

	switch {
	case cli.Debug:
		logrus.SetLevel(logrus.DebugLevel)
	case cli.Quiet:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

func displayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Info("sldc settings:")
	logrus.Info("  [CLI]")
	logrus.Infof("  version: %s", config.VERSION)
	logrus.Infof("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Infof("  inputs: %v", cfg.CLI.Inputs)
	logrus.Infof("  output: %s", cfg.CLI.Output)
	logrus.Infof("  disable color: %v", cfg.CLI.DisableColor)
	logrus.Infof("  quiet: %v", cfg.CLI.Quiet)
	logrus.Info("")
	logrus.Info("  [DECODER]")
	logrus.Infof("  decoder.input_format: %s", cfg.TOML.Decoder.InputFormat)
	logrus.Infof("  decoder.max_output_size: %d", cfg.TOML.Decoder.MaxOutputSize)
	logrus.Info("")
	logrus.Info("  [BATCH]")
	logrus.Infof("  batch.num_workers: %d", cfg.TOML.Batch.NumWorkers)
	logrus.Infof("  batch.output_dir: %s", cfg.TOML.Batch.OutputDir)
	logrus.Infof("  batch.output_suffix: %s", cfg.TOML.Batch.OutputSuffix)
	logrus.Infof("  batch.continue_on_error: %v", cfg.TOML.Batch.ContinueOnError)
	logrus.Infof("  batch.timeout: %s", cfg.TOML.Batch.Timeout.Duration())
}
