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
	"encoding/xml"
	"io"

	"github.com/gravitational/trace"
)

// XMLEncoder writes a record as an indented XML document with a declaration.
// The root element is taken from the record's XMLName or type name.
type XMLEncoder struct {
	w io.Writer
}

func NewXMLEncoder(w io.Writer) Encoder {
	return &XMLEncoder{w: w}
}

func (e *XMLEncoder) Encode(record any) error {
	if _, err := io.WriteString(e.w, xml.Header); err != nil {
		return trace.Wrap(err)
	}

	enc := xml.NewEncoder(e.w)
	enc.Indent("", "  ")
	if err := enc.Encode(record); err != nil {
		return trace.Wrap(err)
	}

	return trace.Wrap(enc.Close())
}
