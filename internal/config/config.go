// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

// Package config loads sldc CLI settings from flags, environment, .env and an optional TOML file.
package config

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	EnvVarPrefix = "SLDC"

	InputFormatRaw = "raw"
	InputFormatHex = "hex"

	DefaultInputFormat   = InputFormatRaw
	DefaultMaxOutputSize = 64 << 20
	DefaultNumWorkers    = 4
	DefaultOutputSuffix  = ".out"

	MinNumWorkers = 1
	MaxNumWorkers = 64
	MaxTimeout    = duration(24 * time.Hour)

	// StdStream selects stdout for --output.
	StdStream = "-"
)

// VERSION gets set during build
var VERSION = "0.0.0"

var validInputFormats = map[string]struct{}{
	InputFormatRaw: {},
	InputFormatHex: {},
}

type Config struct {
	CLI  *CLI
	TOML *TOML
}

type TOML struct {
	Decoder *TOMLDecoder `toml:"decoder"`
	Batch   *TOMLBatch   `toml:"batch"`
}

type TOMLDecoder struct {
	InputFormat   string `toml:"input_format"`
	MaxOutputSize int    `toml:"max_output_size"`
}

type TOMLBatch struct {
	NumWorkers      int      `toml:"num_workers"`
	OutputDir       string   `toml:"output_dir"`
	OutputSuffix    string   `toml:"output_suffix"`
	ContinueOnError bool     `toml:"continue_on_error"`
	Timeout         duration `toml:"timeout"`
}

type CLI struct {
	Inputs          []string `kong:"arg,optional,name='file',help='Compressed payload files (stdin when omitted)'"`
	ConfigFile      string   `kong:"help='Path to the TOML config file',type='path',short='c'"`
	Output          string   `kong:"help='Output file for a single payload (- for stdout)',short='o'"`
	OutputDir       string   `kong:"help='Directory for decoded files',type='path',short='O'"`
	Hex             bool     `kong:"help='Inputs are hex text',short='x'"`
	Workers         int      `kong:"help='Number of decode workers',short='w'"`
	MaxOutputSize   int      `kong:"help='Maximum decompressed size per payload in bytes (0 = config default)'"`
	ContinueOnError bool     `kong:"help='Keep decoding remaining files after a failure'"`
	DisableColor    bool     `kong:"help='Disable color output',short='C'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Quiet   bool             `kong:"help='Only log errors',short='q'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

// NewConfig parses os.Args, loads .env and the TOML file, and validates the result.
func NewConfig() (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	cli, err := readCLIArgs(os.Args[1:])
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	return Load(cli)
}

// Load builds a Config from already parsed CLI args.
func Load(cli *CLI) (*Config, error) {
	if err := validateCLIArgs(cli); err != nil {
		return nil, errors.Wrap(err, "error validating CLI args")
	}

	tomlConfig := &TOML{}
	if cli.ConfigFile != "" {
		var err error
		tomlConfig, err = readTOML(cli.ConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	if err := setTOMLDefaults(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error setting TOML defaults")
	}

	applyCLIOverrides(cli, tomlConfig)

	cfg := &Config{
		CLI:  cli,
		TOML: tomlConfig,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setTOMLDefaults(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if t.Decoder == nil {
		t.Decoder = &TOMLDecoder{}
	}

	if t.Batch == nil {
		t.Batch = &TOMLBatch{}
	}

	// Set defaults for [decoder]
	if t.Decoder.InputFormat == "" {
		t.Decoder.InputFormat = DefaultInputFormat
	}

	if t.Decoder.MaxOutputSize == 0 {
		t.Decoder.MaxOutputSize = DefaultMaxOutputSize
	}

	// Set defaults for [batch]
	if t.Batch.NumWorkers == 0 {
		t.Batch.NumWorkers = DefaultNumWorkers
	}

	if t.Batch.OutputSuffix == "" {
		t.Batch.OutputSuffix = DefaultOutputSuffix
	}

	return nil
}

// applyCLIOverrides lets explicitly set flags win over the TOML file.
func applyCLIOverrides(cli *CLI, t *TOML) {
	if cli.Hex {
		t.Decoder.InputFormat = InputFormatHex
	}

	if cli.MaxOutputSize > 0 {
		t.Decoder.MaxOutputSize = cli.MaxOutputSize
	}

	if cli.Workers > 0 {
		t.Batch.NumWorkers = cli.Workers
	}

	if cli.OutputDir != "" {
		t.Batch.OutputDir = cli.OutputDir
	}

	if cli.ContinueOnError {
		t.Batch.ContinueOnError = true
	}
}

func Validate(c *Config) error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	if err := validateCLIArgs(c.CLI); err != nil {
		return errors.Wrap(err, "error validating CLI args")
	}

	if err := validateTOML(c.TOML); err != nil {
		return errors.Wrap(err, "error validating toml config")
	}

	if c.CLI.Output != "" && len(c.CLI.Inputs) > 1 {
		return errors.New("--output accepts a single input; use --output-dir for several")
	}

	return nil
}

func validateTOML(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if err := validateTOMLDecoder(t.Decoder); err != nil {
		return errors.Wrap(err, "decoder error(s)")
	}

	if err := validateTOMLBatch(t.Batch); err != nil {
		return errors.Wrap(err, "batch error(s)")
	}

	return nil
}

func validateTOMLDecoder(d *TOMLDecoder) error {
	if d == nil {
		return errors.New("decoder cannot be empty")
	}

	if _, ok := validInputFormats[d.InputFormat]; !ok {
		return errors.Errorf("decoder.input_format %s is invalid", d.InputFormat)
	}

	if d.MaxOutputSize < 0 {
		return errors.New("decoder.max_output_size cannot be negative")
	}

	return nil
}

func validateTOMLBatch(b *TOMLBatch) error {
	if b == nil {
		return errors.New("batch cannot be empty")
	}

	if b.NumWorkers < MinNumWorkers || b.NumWorkers > MaxNumWorkers {
		return errors.Errorf("batch.num_workers must be between %d and %d", MinNumWorkers, MaxNumWorkers)
	}

	if b.OutputSuffix == "" {
		return errors.New("batch.output_suffix cannot be empty")
	}

	if b.Timeout < 0 || b.Timeout > MaxTimeout {
		return errors.Errorf("batch.timeout must be between 0s and %s", time.Duration(MaxTimeout))
	}

	if b.OutputDir != "" {
		info, err := os.Stat(b.OutputDir)
		if err != nil {
			return errors.Wrapf(err, "batch.output_dir %s", b.OutputDir)
		}

		if !info.IsDir() {
			return errors.Errorf("batch.output_dir %s is not a directory", b.OutputDir)
		}
	}

	return nil
}

func readCLIArgs(args []string) (*CLI, error) {
	cli := &CLI{}

	parser, err := kong.New(cli,
		kong.Name("sldc"),
		kong.Description("Decode SLDC (ECMA-321) compressed event payloads"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})
	if err != nil {
		return nil, errors.Wrap(err, "error building CLI parser")
	}

	cli.Ctx, err = parser.Parse(args)
	if err != nil {
		return nil, err
	}

	if err := validateCLIArgs(cli); err != nil {
		return nil, errors.Wrap(err, "error validating args")
	}

	return cli, nil
}

func readTOML(file string) (*TOML, error) {
	// Attempt to load file
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "error reading file")
	}

	tomlConfig := &TOML{}

	if err := toml.Unmarshal(data, tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error parsing TOML config")
	}

	return tomlConfig, nil
}

func validateCLIArgs(cli *CLI) error {
	if cli == nil {
		return errors.New("cli args cannot be nil")
	}

	if cli.Workers < 0 {
		return errors.New("--workers cannot be negative")
	}

	if cli.MaxOutputSize < 0 {
		return errors.New("--max-output-size cannot be negative")
	}

	return nil
}

// duration is a time.Duration that reads and writes TOML strings such as "30s".
type duration time.Duration

// Duration returns the value as a time.Duration.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(dur)
	return nil
}
