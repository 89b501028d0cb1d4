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
	"bytes"
	"io"
	"reflect"

	"github.com/gravitational/trace"
	"gopkg.in/ini.v1"
)

// INIEncoder writes a record as an INI document holding one section named
// after the record type. Keys come from the record's `ini` struct tags.
//
// Every call starts from an empty document; whatever the sink held before is
// never merged in. The document is read back before anything reaches the
// sink, and values the INI syntax cannot carry are rejected.
type INIEncoder struct {
	w io.Writer
}

func NewINIEncoder(w io.Writer) Encoder {
	return &INIEncoder{w: w}
}

func (e *INIEncoder) Encode(record any) error {
	name, err := sectionName(record)
	if err != nil {
		return trace.Wrap(err)
	}

	doc := ini.Empty()
	section, err := doc.NewSection(name)
	if err != nil {
		return trace.Wrap(err)
	}

	if err := section.ReflectFrom(record); err != nil {
		return trace.Wrap(err, "mapping %s into INI section", name)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return trace.Wrap(err)
	}

	if err := checkReadBack(buf.Bytes(), section); err != nil {
		return trace.Wrap(err)
	}

	_, err = e.w.Write(buf.Bytes())
	return trace.Wrap(err)
}

// checkReadBack parses data with default options and compares every key of
// want. ini.v1 leaves some values unquoted that its own reader then alters:
// surrounding quotes are stripped, a trailing backslash continues the line,
// and a value holding """ next to a newline cannot be closed.
func checkReadBack(data []byte, want *ini.Section) error {
	doc, err := ini.Load(data)
	if err != nil {
		return trace.BadParameter("section %s cannot be represented as INI: %v", want.Name(), err)
	}

	got, err := doc.GetSection(want.Name())
	if err != nil {
		return trace.BadParameter("section %s cannot be represented as INI", want.Name())
	}

	for _, key := range want.Keys() {
		if !got.HasKey(key.Name()) || got.Key(key.Name()).Value() != key.Value() {
			return trace.BadParameter("value of %s.%s cannot be represented as INI: %q", want.Name(), key.Name(), key.Value())
		}
	}
	return nil
}

// sectionName requires a pointer to a named struct, which is also what
// ini.Section.ReflectFrom accepts.
func sectionName(record any) (string, error) {
	t := reflect.TypeOf(record)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return "", trace.BadParameter("INI records must be pointers to structs, got %T", record)
	}

	name := t.Elem().Name()
	if name == "" {
		return "", trace.BadParameter("INI records must be named types, got %T", record)
	}

	return name, nil
}
