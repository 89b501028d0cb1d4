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

package sequence

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/gravitational/shared-workflows/tools/seq-export/record"
	"github.com/gravitational/trace"
)

// Provider supplies the current sequence as produced by the upstream generator.
type Provider interface {
	Sequence(ctx context.Context) (string, error)
}

// Func adapts a function to a Provider.
type Func func(ctx context.Context) (string, error)

func (f Func) Sequence(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static always returns the same, already serialized sequence.
type Static string

func (s Static) Sequence(context.Context) (string, error) {
	return string(s), nil
}

// FromValues serializes values as a comma separated list on every call.
func FromValues(values record.NumericSequence) Provider {
	return Func(func(context.Context) (string, error) {
		return values.String(), nil
	})
}

// ParseValues parses command line arguments into a sequence. Each argument may
// itself hold several comma separated values.
func ParseValues(args []string) (record.NumericSequence, error) {
	var out record.NumericSequence
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, trace.BadParameter("%q is not a number", field)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, trace.BadParameter("%q is not a finite number", field)
			}
			out = append(out, v)
		}
	}
	return out, nil
}
