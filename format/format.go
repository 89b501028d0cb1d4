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
	"path/filepath"
)

// Format is the serialization selected for a target path.
type Format int

const (
	Unsupported Format = iota
	INI
	JSON
	XML
)

// Extensions are matched case-sensitively.
var byExtension = map[string]Format{
	".ini":  INI,
	".json": JSON,
	".xml":  XML,
}

// FromPath classifies path by the extension of its last element.
func FromPath(path string) Format {
	return FromExtension(filepath.Ext(path))
}

// FromExtension maps an extension, including the leading dot, to a Format.
func FromExtension(ext string) Format {
	if f, ok := byExtension[ext]; ok {
		return f
	}
	return Unsupported
}

// Extension returns the canonical extension for f, or "" for Unsupported.
func (f Format) Extension() string {
	for ext, known := range byExtension {
		if known == f {
			return ext
		}
	}
	return ""
}

// Supported reports whether a writer exists for f.
func (f Format) Supported() bool {
	return f != Unsupported
}

func (f Format) String() string {
	switch f {
	case INI:
		return "ini"
	case JSON:
		return "json"
	case XML:
		return "xml"
	default:
		return "unsupported"
	}
}

// All lists the supported formats in a stable order.
func All() []Format {
	return []Format{INI, JSON, XML}
}
