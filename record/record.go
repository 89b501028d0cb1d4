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

package record

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// DataModel is the single-field record written by the format encoders.
// Serialized names follow the type name: section/root "DataModel", field "Sequence".
type DataModel struct {
	XMLName  xml.Name `json:"-" xml:"DataModel" ini:"-"`
	Sequence string   `json:"Sequence" xml:"Sequence" ini:"Sequence"`
}

// New builds the record for a single write.
func New(sequence string) *DataModel {
	return &DataModel{Sequence: sequence}
}

// NumericSequence is an ordered series of values as produced by the sequence generator.
type NumericSequence []float64

// FormatValue renders v in plain decimal notation, using the fewest digits
// that still parse back to v (1 -> "1", 2.5 -> "2.5").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Strings formats every value independently, preserving order.
func (s NumericSequence) Strings() []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, FormatValue(v))
	}
	return out
}

// String joins the formatted values with commas, e.g. "1,2,3,5,8".
func (s NumericSequence) String() string {
	return strings.Join(s.Strings(), ",")
}
