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

package writer

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/gravitational/shared-workflows/tools/seq-export/encoder"
	"github.com/gravitational/shared-workflows/tools/seq-export/logging"
	"github.com/gravitational/trace"
)

// KeyedWriter is a sink for one encoded record.
// SinkKey names the destination in logs.
type KeyedWriter interface {
	io.WriteCloser
	SinkKey() string
}

// Opener resolves a path into a sink.
type Opener func(ctx context.Context, path string) (KeyedWriter, error)

// New opens the sink for path. Local files are created or truncated so every
// write replaces the previous content; "s3://bucket/key" streams into an object.
func New(ctx context.Context, path string) (KeyedWriter, error) {
	switch {
	case path == "":
		return nil, trace.BadParameter("missing output path")
	case strings.HasPrefix(path, s3Scheme):
		return newS3Writer(ctx, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	return &fileWriter{
		WriteCloser: f,
		sink:        path,
	}, nil
}

// WriteRecord opens path with open, encodes rec with the encoder built by
// newEncoder and closes the sink. A close error is reported even when
// encoding succeeded, since that is where buffered sinks commit.
func WriteRecord(ctx context.Context, open Opener, path string, newEncoder encoder.Factory, rec any) error {
	w, err := open(ctx, path)
	if err != nil {
		return trace.Wrap(err, "opening %q", path)
	}

	log := logging.FromCtx(ctx)
	if err := newEncoder(w).Encode(rec); err != nil {
		if cerr := discard(w, err); cerr != nil {
			log.DebugContext(ctx, "Failed to discard sink after encode error", "sink", w.SinkKey(), "error", cerr)
		}
		return trace.Wrap(err, "encoding record for %q", w.SinkKey())
	}

	if err := w.Close(); err != nil {
		return trace.Wrap(err, "closing %q", w.SinkKey())
	}

	return nil
}

// aborter is implemented by sinks that commit on Close and can drop
// what was written instead.
type aborter interface {
	Abort(cause error) error
}

func discard(w KeyedWriter, cause error) error {
	if a, ok := w.(aborter); ok {
		return a.Abort(cause)
	}
	return w.Close()
}

type fileWriter struct {
	io.WriteCloser
	sink string
}

func (w *fileWriter) SinkKey() string {
	return w.sink
}
