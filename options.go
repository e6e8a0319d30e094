// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/sldc

package sldc

import "github.com/sirupsen/logrus"

// Options configures Decompress behavior.
type Options struct {
	// MaxOutputSize caps the decompressed size in bytes. 0 means unlimited.
	// Exceeding it fails with ErrOutputTooLarge.
	MaxOutputSize int
	// Logger receives debug records about each decode. Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultOptions returns options for default behavior: no output limit, standard logger.
func DefaultOptions() *Options {
	return &Options{
		Logger: logrus.StandardLogger(),
	}
}

// logger returns the configured logger or the logrus standard logger.
func (o *Options) logger() logrus.FieldLogger {
	if o == nil || o.Logger == nil {
		return logrus.StandardLogger()
	}

	return o.Logger
}
