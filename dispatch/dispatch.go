// Copyright 2026 Gravitational, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitational/shared-workflows/tools/seq-export/encoder"
	"github.com/gravitational/shared-workflows/tools/seq-export/format"
	"github.com/gravitational/shared-workflows/tools/seq-export/logging"
	"github.com/gravitational/shared-workflows/tools/seq-export/record"
	"github.com/gravitational/shared-workflows/tools/seq-export/sequence"
	"github.com/gravitational/shared-workflows/tools/seq-export/writer"
	"github.com/gravitational/trace"
)

// Outcome reports what WriteSequenceToFile did with a path.
type Outcome int

const (
	// OutcomeWritten means the file now holds the new sequence.
	OutcomeWritten Outcome = iota
	// OutcomeUnsupported means the extension has no writer and nothing was written.
	OutcomeUnsupported
	// OutcomeFailed means a writer failed; the details were logged.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

const (
	unsupportedNotice = "Unknown file extension %q (supported: %s). Please re-enter the file path."
	failureNotice     = "Error of creating/rewriting file with sequence"
)

// Dispatcher routes a sequence record to the encoder matching the target
// path's extension. It holds no mutable state.
type Dispatcher struct {
	encoders map[format.Format]encoder.Factory
	open     writer.Opener
	notices  io.Writer
	logger   *slog.Logger // nil means the context logger
}

type Option func(*Dispatcher) error

// New creates a dispatcher with the INI, JSON and XML encoders registered.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		encoders: make(map[format.Format]encoder.Factory),
		open:     writer.New,
		notices:  os.Stdout,
	}

	for _, f := range format.All() {
		factory, err := encoder.ForFormat(f)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		d.encoders[f] = factory
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, trace.Wrap(err)
		}
	}

	return d, nil
}

// WithEncoder replaces the encoder used for a supported format.
func WithEncoder(f format.Format, factory encoder.Factory) Option {
	return func(d *Dispatcher) error {
		if !f.Supported() {
			return trace.BadParameter("cannot register an encoder for %v", f)
		}
		if factory == nil {
			return trace.BadParameter("missing encoder for %v", f)
		}
		d.encoders[f] = factory
		return nil
	}
}

// WithOpener replaces how paths are turned into sinks.
func WithOpener(open writer.Opener) Option {
	return func(d *Dispatcher) error {
		if open == nil {
			return trace.BadParameter("missing opener")
		}
		d.open = open
		return nil
	}
}

// WithNotices sets where user facing messages are printed.
func WithNotices(w io.Writer) Option {
	return func(d *Dispatcher) error {
		if w == nil {
			return trace.BadParameter("missing notice writer")
		}
		d.notices = w
		return nil
	}
}

// WithLogger pins the logger instead of taking it from the context.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		d.logger = logger
		return nil
	}
}

// WriteSequenceToFile writes the provider's current sequence to path in the
// format named by its extension. It never returns an error: unsupported
// extensions and write failures are reported to the user and logged, and the
// outcome tells the caller which of the two happened.
func (d *Dispatcher) WriteSequenceToFile(ctx context.Context, path string, provider sequence.Provider) (outcome Outcome) {
	log := d.logger
	if log == nil {
		log = logging.FromCtx(ctx)
	}
	log = log.With("path", path)
	log.DebugContext(ctx, "Writing sequence to file")

	f := format.FromPath(path)
	if !f.Supported() {
		ext := filepath.Ext(path)
		log.WarnContext(ctx, "File extension is not supported", "extension", ext)
		d.notify(log, unsupportedNotice, ext, supportedExtensions())
		return OutcomeUnsupported
	}

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Writer panicked", "format", f.String(), "panic", r)
			d.notify(log, failureNotice)
			outcome = OutcomeFailed
		}
	}()

	if err := d.write(ctx, f, path, provider); err != nil {
		log.ErrorContext(ctx, "Failed to write sequence file", "format", f.String(), "error", err)
		d.notify(log, failureNotice)
		return OutcomeFailed
	}

	log.InfoContext(ctx, "Sequence file updated", "format", f.String())
	return OutcomeWritten
}

func (d *Dispatcher) write(ctx context.Context, f format.Format, path string, provider sequence.Provider) error {
	if provider == nil {
		return trace.BadParameter("missing sequence provider")
	}

	seq, err := provider.Sequence(ctx)
	if err != nil {
		return trace.Wrap(err, "fetching sequence")
	}

	return trace.Wrap(writer.WriteRecord(ctx, d.open, path, d.encoders[f], record.New(seq)))
}

func (d *Dispatcher) notify(log *slog.Logger, msg string, args ...any) {
	if _, err := fmt.Fprintf(d.notices, msg+"\n", args...); err != nil {
		log.Debug("Failed to print notice", "error", err)
	}
}

func supportedExtensions() string {
	exts := make([]string, 0, len(format.All()))
	for _, f := range format.All() {
		exts = append(exts, f.Extension())
	}
	return strings.Join(exts, ", ")
}

// WriteSequenceToFile writes with a default dispatcher printing to stdout.
func WriteSequenceToFile(ctx context.Context, path string, provider sequence.Provider) Outcome {
	d, err := New()
	if err != nil {
		// Only reachable if a built-in encoder is missing.
		logging.FromCtx(ctx).ErrorContext(ctx, "Failed to set up dispatcher", "error", err)
		fmt.Fprintln(os.Stdout, failureNotice)
		return OutcomeFailed
	}
	return d.WriteSequenceToFile(ctx, path, provider)
}
