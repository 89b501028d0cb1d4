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

package encoder

import (
	"io"

	"github.com/gravitational/shared-workflows/tools/seq-export/format"
	"github.com/gravitational/trace"
)

// Encoder converts records into bytes written to an io.Writer.
type Encoder interface {
	Encode(any) error
}

// Factory binds an Encoder to a sink.
type Factory func(w io.Writer) Encoder

// ForFormat returns the factory serializing records into f.
func ForFormat(f format.Format) (Factory, error) {
	switch f {
	case format.INI:
		return NewINIEncoder, nil
	case format.JSON:
		return NewJSONEncoder, nil
	case format.XML:
		return NewXMLEncoder, nil
	default:
		return nil, trace.BadParameter("no encoder for format %q", f)
	}
}
