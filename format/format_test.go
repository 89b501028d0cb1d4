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

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{name: "ini", path: "out.ini", want: INI},
		{name: "json", path: "/tmp/dir/out.json", want: JSON},
		{name: "xml", path: "relative/out.xml", want: XML},
		{name: "s3 object", path: "s3://bucket/prefix/out.json", want: JSON},
		{name: "only final extension counts", path: "archive.json.bak", want: Unsupported},
		{name: "double extension", path: "out.bak.xml", want: XML},
		{name: "case sensitive", path: "OUT.JSON", want: Unsupported},
		{name: "no extension", path: "out", want: Unsupported},
		{name: "dot in directory only", path: "dir.json/out", want: Unsupported},
		{name: "csv", path: "out.csv", want: Unsupported},
		{name: "empty", path: "", want: Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}
}

func TestFormat_Extension(t *testing.T) {
	for _, f := range All() {
		assert.True(t, f.Supported())
		assert.Equal(t, f, FromExtension(f.Extension()), f.String())
	}

	assert.False(t, Unsupported.Supported())
	assert.Empty(t, Unsupported.Extension())
	assert.Equal(t, "unsupported", Unsupported.String())
}
