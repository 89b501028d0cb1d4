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
	"encoding/json"
	"io"

	"github.com/gravitational/trace"
)

// JSONEncoder writes a record as a single compact JSON document.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) Encoder {
	return &JSONEncoder{w: w}
}

// Encode writes no trailing newline so the file holds exactly the document.
func (e *JSONEncoder) Encode(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return trace.Wrap(err)
	}

	_, err = e.w.Write(data)
	return trace.Wrap(err)
}
