// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

// Package batch decodes captured SLDC payloads with a pool of workers.
package batch

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/sldc"
	"github.com/woozymasta/sldc/internal/config"
)

// ErrFailed is returned after a run in which at least one payload failed.
var ErrFailed = errors.New("one or more payloads failed to decode")

type Job struct {
	ID     int
	Input  string
	Output string
}

type Result struct {
	Job      *Job
	InBytes  int
	OutBytes int
	Err      error
}

// Summary totals a run.
type Summary struct {
	Decoded  int
	Failed   int
	InBytes  int64
	OutBytes int64
	Took     time.Duration
}

type Runner struct {
	cfg    *config.Config
	log    *logrus.Entry
	opts   *sldc.Options
	stdout io.Writer
}

func New(cfg *config.Config) (*Runner, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "error validating config")
	}

	log := logrus.WithField("pkg", "batch")

	return &Runner{
		cfg: cfg,
		log: log,
		opts: &sldc.Options{
			MaxOutputSize: cfg.TOML.Decoder.MaxOutputSize,
			Logger:        log,
		},
		stdout: os.Stdout,
	}, nil
}

// Run decodes every CLI input. It stops at the first failure unless
// batch.continue_on_error is set, in which case it returns ErrFailed at the end.
func (r *Runner) Run(shutdownCtx context.Context) (*Summary, error) {
	inputs := r.cfg.CLI.Inputs
	if len(inputs) == 0 {
		return nil, errors.New("no inputs to decode")
	}

	ctx, cancel := context.WithCancel(shutdownCtx)
	defer cancel()

	if timeout := r.cfg.TOML.Batch.Timeout.Duration(); timeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, timeout)
		defer timeoutCancel()
	}

	numWorkers := r.cfg.TOML.Batch.NumWorkers
	if numWorkers > len(inputs) {
		numWorkers = len(inputs)
	}

	startedAt := time.Now()
	jobCh := make(chan *Job, numWorkers)
	resultCh := make(chan *Result, numWorkers)
	wg := &sync.WaitGroup{}

	// Launch reader
	go func() {
		r.log.Debug("reader start")
		defer r.log.Debug("reader exit")
		defer close(jobCh)

		r.runReader(ctx, inputs, jobCh)
	}()

	// Launch workers
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)

		go func(id int) {
			defer wg.Done()

			r.runWorker(ctx, id, jobCh, resultCh)
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	summary := &Summary{}
	var firstErr error

	for res := range resultCh {
		summary.InBytes += int64(res.InBytes)

		if res.Err != nil {
			summary.Failed++
			r.log.WithField("input", res.Job.Input).Errorf("unable to decode payload: %v", res.Err)

			if !r.cfg.TOML.Batch.ContinueOnError && firstErr == nil {
				firstErr = errors.Wrapf(res.Err, "error decoding '%s'", res.Job.Input)
				cancel()
			}

			continue
		}

		summary.Decoded++
		summary.OutBytes += int64(res.OutBytes)
	}

	summary.Took = time.Since(startedAt)

	if firstErr != nil {
		return summary, firstErr
	}

	if err := ctx.Err(); err != nil && summary.Decoded+summary.Failed < len(inputs) {
		return summary, errors.Wrap(err, "batch run interrupted")
	}

	if summary.Failed > 0 {
		return summary, errors.Wrapf(ErrFailed, "%d of %d payloads failed", summary.Failed, len(inputs))
	}

	return summary, nil
}

// RunStream decodes one payload from in and writes it to --output or stdout.
func (r *Runner) RunStream(in io.Reader) (*Result, error) {
	output := r.cfg.CLI.Output
	if output == "" {
		output = config.StdStream
	}

	job := &Job{Input: config.StdStream, Output: output}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read input stream")
	}

	res := r.decodeJob(job, data)
	if res.Err != nil {
		return res, res.Err
	}

	return res, nil
}

func (r *Runner) runReader(ctx context.Context, inputs []string, jobCh chan<- *Job) {
	llog := r.log.WithFields(logrus.Fields{
		"method": "runReader",
	})

MAIN:
	for i, input := range inputs {
		job := &Job{
			ID:     i,
			Input:  input,
			Output: r.outputPath(input),
		}

		select {
		case <-ctx.Done():
			llog.Debug("received shutdown signal")
			break MAIN
		case jobCh <- job:
			llog.Debugf("queued job '%d' for '%s'", job.ID, job.Input)
		}
	}
}

func (r *Runner) runWorker(ctx context.Context, id int, jobCh <-chan *Job, resultCh chan<- *Result) {
	llog := r.log.WithFields(logrus.Fields{
		"method": "runWorker",
		"id":     id,
	})

	llog.Debug("start")
	defer llog.Debug("exit")

	var numHandled int

MAIN:
	for {
		select {
		case <-ctx.Done():
			llog.Debug("received shutdown signal")
			break MAIN
		case job, open := <-jobCh:
			if !open {
				llog.Debug("job channel closed - exiting worker")
				break MAIN
			}

			resultCh <- r.processJob(job)
			numHandled++
		}
	}

	llog.Debugf("handled '%d' jobs", numHandled)
}

func (r *Runner) processJob(job *Job) *Result {
	data, err := os.ReadFile(job.Input)
	if err != nil {
		return &Result{Job: job, Err: errors.Wrap(err, "unable to read input file")}
	}

	return r.decodeJob(job, data)
}

func (r *Runner) decodeJob(job *Job, data []byte) *Result {
	res := &Result{Job: job, InBytes: len(data)}

	out, err := Decode(data, r.cfg.TOML.Decoder.InputFormat, r.opts)
	if err != nil {
		res.Err = err
		return res
	}

	if err := r.writeOutput(job.Output, out); err != nil {
		res.Err = err
		return res
	}

	res.OutBytes = len(out)

	r.log.WithFields(logrus.Fields{
		"input":  job.Input,
		"output": job.Output,
		"in":     res.InBytes,
		"out":    res.OutBytes,
	}).Debug("payload decoded")

	return res
}

// outputPath maps an input to <output_dir or dir(input)>/<base(input)><suffix>,
// or to --output when there is a single input.
func (r *Runner) outputPath(input string) string {
	if r.cfg.CLI.Output != "" && len(r.cfg.CLI.Inputs) == 1 {
		return r.cfg.CLI.Output
	}

	dir := r.cfg.TOML.Batch.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, filepath.Base(input)+r.cfg.TOML.Batch.OutputSuffix)
}

// writeOutput writes data to path via a temp file and rename, or to stdout for "-".
func (r *Runner) writeOutput(path string, data []byte) error {
	if path == config.StdStream {
		if _, err := r.stdout.Write(data); err != nil {
			return errors.Wrap(err, "unable to write to stdout")
		}

		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "unable to create temp output file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to write output file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to close output file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "unable to move output into '%s'", path)
	}

	return nil
}

// Decode converts data from the given input format and decompresses it.
func Decode(data []byte, format string, opts *sldc.Options) ([]byte, error) {
	switch format {
	case config.InputFormatRaw:
	case config.InputFormatHex:
		raw, err := hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
		if err != nil {
			return nil, errors.Wrap(err, "error decoding hex input")
		}
		data = raw
	default:
		return nil, errors.Errorf("unsupported input format '%s'", format)
	}

	out, err := sldc.Decompress(data, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error decompressing payload")
	}

	return out, nil
}
