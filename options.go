/*
 * Copyright 2026 The CellCalc Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cellcalc

import (
	"io"
	"math/rand"
	"time"

	"github.com/gridkit/cellcalc/functions"
	"github.com/gridkit/cellcalc/logger"
	"github.com/gridkit/cellcalc/types"
)

// Option customizes a Calc host at construction time.
type Option func(*Calc)

// WithLogger sets a custom logger for registry and bridge diagnostics.
//
// Example:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	calc := cellcalc.New(cellcalc.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(c *Calc) {
		logger.SetDefault(log)
	}
}

// WithLogLevel sets the level of the default logger.
//
// Example:
//
//	calc := cellcalc.New(cellcalc.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(c *Calc) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput redirects logging to the given writer at the given level.
//
// Example:
//
//	logFile, _ := os.OpenFile("cellcalc.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	calc := cellcalc.New(cellcalc.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(c *Calc) {
		logger.SetDefault(logger.NewLogger(level, output))
	}
}

// WithDiscardLog disables all logging.
func WithDiscardLog() Option {
	return func(c *Calc) {
		logger.SetDefault(logger.NewDiscardLogger())
	}
}

// WithRegistry uses a private function registry instead of the shared
// global one. Useful when a host must expose a restricted or extended
// function set without affecting other hosts in the process.
func WithRegistry(r *functions.Registry) Option {
	return func(c *Calc) {
		c.registry = r
	}
}

// WithLocale sets the locale configuration used for number and criteria
// parsing.
//
// Example:
//
//	calc := cellcalc.New(cellcalc.WithLocale(types.LocaleConfig{
//	    DecimalSeparator:  ',',
//	    ThousandSeparator: '.',
//	    ListSeparator:     ';',
//	}))
func WithLocale(loc types.LocaleConfig) Option {
	return func(c *Calc) {
		c.locale = loc
	}
}

// WithDateSystem selects the workbook's serial-date epoch.
func WithDateSystem(ds types.DateSystem) Option {
	return func(c *Calc) {
		c.dateSystem = ds
	}
}

// WithNow overrides the clock seen by a recalculation pass. Mainly for
// tests and for hosts that pin "now" per pass.
func WithNow(now func() time.Time) Option {
	return func(c *Calc) {
		c.now = now
	}
}

// WithRandSeed seeds the volatile-function generator, making RAND and
// RANDBETWEEN reproducible.
//
// Example:
//
//	calc := cellcalc.New(cellcalc.WithRandSeed(42))
func WithRandSeed(seed int64) Option {
	return func(c *Calc) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRandSource supplies the volatile-function randomness source directly.
func WithRandSource(src rand.Source) Option {
	return func(c *Calc) {
		c.rand = rand.New(src)
	}
}
