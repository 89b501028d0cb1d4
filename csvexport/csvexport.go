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

package csvexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gravitational/shared-workflows/tools/seq-export/encoder"
	"github.com/gravitational/shared-workflows/tools/seq-export/logging"
	"github.com/gravitational/shared-workflows/tools/seq-export/record"
	"github.com/gravitational/trace"
)

const (
	// TimestampLayout is YYYY-MM-DD HH-mm-ss.
	TimestampLayout = "2006-01-02 15-04-05"
	Extension       = ".csv"

	// maxAttempts bounds the " (n)" suffixes tried when names collide.
	maxAttempts = 100
)

// Exporter dumps numeric sequences into timestamp named CSV files.
type Exporter struct {
	// Dir receives the files. Empty means DefaultDir.
	Dir string
	// Now is the clock used for file names. Defaults to time.Now.
	Now func() time.Time
}

// DefaultDir is the user's desktop, or the home directory when there is none.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", trace.Wrap(err, "locating home directory")
	}

	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop, nil
	}
	return home, nil
}

// Export writes values, one per line, to a new file and returns its path.
// Files are never overwritten: when the timestamped name is taken a " (n)"
// suffix is added.
func (e *Exporter) Export(ctx context.Context, values record.NumericSequence) (string, error) {
	log := logging.FromCtx(ctx)
	log.DebugContext(ctx, "Exporting sequence to CSV", "values", len(values))

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now().Format(TimestampLayout)

	dir := e.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return "", trace.Wrap(err)
		}
	}

	var buf bytes.Buffer
	if err := encoder.NewCSVEncoder(&buf).Encode(values); err != nil {
		return "", trace.Wrap(err)
	}

	f, path, err := createUnique(dir, stamp)
	if err != nil {
		return "", trace.Wrap(err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(path)
		return "", trace.Wrap(err, "writing %q", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", trace.Wrap(err, "closing %q", path)
	}

	log.InfoContext(ctx, "Sequence exported to CSV", "path", path, "values", len(values))
	return path, nil
}

func createUnique(dir, stamp string) (*os.File, string, error) {
	for i := 0; i < maxAttempts; i++ {
		name := stamp + Extension
		if i > 0 {
			name = fmt.Sprintf("%s (%d)%s", stamp, i, Extension)
		}

		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		switch {
		case err == nil:
			return f, path, nil
		case errors.Is(err, fs.ErrExist):
			continue
		default:
			return nil, "", trace.ConvertSystemError(err)
		}
	}

	return nil, "", trace.AlreadyExists("no free file name for %q in %q after %d attempts", stamp+Extension, dir, maxAttempts)
}
