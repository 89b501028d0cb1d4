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
	"encoding/csv"
	"io"

	"github.com/gravitational/shared-workflows/tools/seq-export/record"
	"github.com/gravitational/trace"
)

// CSVEncoder writes a numeric sequence one value per line, without a header.
type CSVEncoder struct {
	w io.Writer
}

func NewCSVEncoder(w io.Writer) Encoder {
	return &CSVEncoder{w: w}
}

func (e *CSVEncoder) Encode(values any) error {
	var seq record.NumericSequence
	switch v := values.(type) {
	case record.NumericSequence:
		seq = v
	case []float64:
		seq = v
	default:
		return trace.BadParameter("CSV encoder expects a numeric sequence, got %T", values)
	}

	w := csv.NewWriter(e.w)
	for _, field := range seq.Strings() {
		if err := w.Write([]string{field}); err != nil {
			return trace.Wrap(err)
		}
	}
	w.Flush()

	return trace.Wrap(w.Error())
}
