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
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitational/shared-workflows/tools/seq-export/encoder"
	"github.com/gravitational/shared-workflows/tools/seq-export/record"
)

func TestNew_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")

	w, err := New(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, path, w.SinkKey())

	data := []byte("hello world")
	n, err := w.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))
}

func TestNew_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0o644))

	w, err := New(t.Context(), path)
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(t.Context(), "")
	assert.True(t, trace.IsBadParameter(err))

	_, err = New(t.Context(), filepath.Join(t.TempDir(), "missing", "file.json"))
	require.Error(t, err)
	assert.True(t, trace.IsNotFound(err))

	_, err = New(t.Context(), "s3://bucket-only")
	assert.True(t, trace.IsBadParameter(err))
}

func TestParseS3Path(t *testing.T) {
	tests := []struct {
		path       string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{path: "s3://bucket/out.json", wantBucket: "bucket", wantKey: "out.json"},
		{path: "s3://bucket/nested/dir/out.xml", wantBucket: "bucket", wantKey: "nested/dir/out.xml"},
		{path: "s3://bucket", wantErr: true},
		{path: "s3://bucket/", wantErr: true},
		{path: "s3:///key.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			bucket, key, err := parseS3Path(tt.path)
			if tt.wantErr {
				assert.True(t, trace.IsBadParameter(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

// fakeS3 records single part uploads. Multipart calls are not expected for
// records this small and panic through the nil embedded interface.
type fakeS3 struct {
	manager.UploadAPIClient

	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Bucket+"/"+*in.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Writer(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}

	w := NewS3Writer(t.Context(), client, "bucket", "dir/out.json")
	assert.Equal(t, "s3://bucket/dir/out.json", w.SinkKey())

	_, err := w.Write([]byte(`{"Sequence":"1,2"}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	assert.Equal(t, `{"Sequence":"1,2"}`, string(client.objects["bucket/dir/out.json"]))

	_, err = w.Write([]byte("late"))
	assert.True(t, trace.IsBadParameter(err))
}

func TestS3Writer_UploadError(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}, err: errors.New("access denied")}

	w := NewS3Writer(t.Context(), client, "bucket", "out.json")
	_, _ = w.Write([]byte("data"))
	require.ErrorContains(t, w.Close(), "access denied")
}

func TestS3Writer_Abort(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}

	w := NewS3Writer(t.Context(), client, "bucket", "out.json")
	_, err := w.Write([]byte(`{"Sequence":`))
	require.NoError(t, err)
	require.NoError(t, w.Abort(errors.New("encode failed")))
	require.NoError(t, w.Close(), "close after abort is a no-op")

	assert.Empty(t, client.objects)
}

func TestWriteRecord_EncodeErrorAbortsS3Upload(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}
	open := func(ctx context.Context, _ string) (KeyedWriter, error) {
		return NewS3Writer(ctx, client, "bucket", "out.json"), nil
	}

	err := WriteRecord(t.Context(), open, "s3://bucket/out.json", newHalfEncoder, record.New("1,2,3"))
	require.ErrorContains(t, err, "encoder gave up")
	assert.Empty(t, client.objects)
}

// halfEncoder writes part of a document before failing.
type halfEncoder struct{ w io.Writer }

func newHalfEncoder(w io.Writer) encoder.Encoder { return halfEncoder{w: w} }

func (e halfEncoder) Encode(any) error {
	if _, err := e.w.Write([]byte(`{"Sequence":`)); err != nil {
		return err
	}
	return errors.New("encoder gave up")
}

type bufferSink struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (b *bufferSink) Close() error {
	b.closed = true
	return b.closeErr
}

func (b *bufferSink) SinkKey() string { return "buffer" }

type abortingSink struct {
	bufferSink
	aborted error
}

func (a *abortingSink) Abort(cause error) error {
	a.aborted = cause
	return nil
}

func TestWriteRecord(t *testing.T) {
	sink := &bufferSink{}
	open := func(context.Context, string) (KeyedWriter, error) { return sink, nil }

	err := WriteRecord(t.Context(), open, "out.json", encoder.NewJSONEncoder, record.New("1,2,3"))
	require.NoError(t, err)
	assert.True(t, sink.closed)
	assert.Equal(t, `{"Sequence":"1,2,3"}`, sink.String())
}

func TestWriteRecord_Errors(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		open := func(context.Context, string) (KeyedWriter, error) { return nil, trace.AccessDenied("nope") }
		err := WriteRecord(t.Context(), open, "out.json", encoder.NewJSONEncoder, record.New("1"))
		assert.True(t, trace.IsAccessDenied(err))
	})

	t.Run("encode closes sink", func(t *testing.T) {
		sink := &bufferSink{}
		open := func(context.Context, string) (KeyedWriter, error) { return sink, nil }
		err := WriteRecord(t.Context(), open, "out.ini", encoder.NewINIEncoder, "not a struct")
		require.Error(t, err)
		assert.True(t, sink.closed)
	})

	t.Run("encode aborts sink", func(t *testing.T) {
		sink := &abortingSink{}
		open := func(context.Context, string) (KeyedWriter, error) { return sink, nil }
		err := WriteRecord(t.Context(), open, "out.json", newHalfEncoder, record.New("1"))
		require.Error(t, err)
		assert.ErrorContains(t, sink.aborted, "encoder gave up")
		assert.False(t, sink.closed, "aborted sinks are not committed")
	})

	t.Run("close", func(t *testing.T) {
		sink := &bufferSink{closeErr: errors.New("flush failed")}
		open := func(context.Context, string) (KeyedWriter, error) { return sink, nil }
		err := WriteRecord(t.Context(), open, "out.xml", encoder.NewXMLEncoder, record.New("1"))
		require.ErrorContains(t, err, "flush failed")
	})
}
