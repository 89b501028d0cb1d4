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
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gravitational/shared-workflows/tools/seq-export/logging"
	"github.com/gravitational/trace"
)

const s3Scheme = "s3://"

// S3Writer streams all bytes written into a single S3 object via a pipe.
// PutObject replaces any existing object, which gives the same overwrite
// semantics as a truncated local file.
type S3Writer struct {
	bucket string
	key    string

	pipeWriter *io.PipeWriter
	done       chan error
	mu         sync.Mutex
	closed     bool
}

// NewS3Writer starts the upload of bucket/key and returns the writer feeding it.
func NewS3Writer(ctx context.Context, client manager.UploadAPIClient, bucket, key string) *S3Writer {
	pr, pw := io.Pipe()
	done := make(chan error, 1)

	go func() {
		uploader := manager.NewUploader(client)
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: &bucket,
			Key:    &key,
			Body:   pr,
		})
		// Unblock writers if the upload gave up early.
		pr.CloseWithError(err)
		done <- err
		close(done)
	}()

	return &S3Writer{
		bucket:     bucket,
		key:        key,
		pipeWriter: pw,
		done:       done,
	}
}

func (w *S3Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, trace.BadParameter("write on closed S3Writer")
	}

	return w.pipeWriter.Write(p)
}

// Close closes the pipe and waits for the upload to finish.
func (w *S3Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.pipeWriter.Close() // signal EOF to S3
	return trace.Wrap(<-w.done)
}

// Abort fails the upload with cause so no partial object is stored.
func (w *S3Writer) Abort(cause error) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	if cause == nil {
		cause = trace.BadParameter("upload aborted")
	}
	w.pipeWriter.CloseWithError(cause)
	<-w.done // the upload reports cause; nothing to surface
	return nil
}

func (w *S3Writer) SinkKey() string {
	return s3Scheme + w.bucket + "/" + w.key
}

// parseS3Path splits "s3://bucket/key" into its parts.
func parseS3Path(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, s3Scheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", trace.BadParameter("invalid s3 path: %q", path)
	}
	return parts[0], parts[1], nil
}

func newS3Writer(ctx context.Context, path string) (*S3Writer, error) {
	bucket, key, err := parseS3Path(path)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithLogger(logging.ToAWSLogger(logging.FromCtx(ctx))))
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return NewS3Writer(ctx, s3.NewFromConfig(cfg), bucket, key), nil
}
