/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package table

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RedHatInsights/booltab/types"
	"github.com/RedHatInsights/booltab/utils"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// textBufferSize is size of text output buffer, full buffer is written out
// while rows are still being computed
const textBufferSize = 64 * 1024

// Renderer writes truth table to output. Begin is called once before the
// first row, Row once per computed row and End only when the whole table was
// computed. Flush makes rows rendered so far visible when the enumeration
// fails.
type Renderer interface {
	Begin(expression string, names types.VariableNames) error
	Row(row types.Row) error
	End(report *types.ReportMessage) error
	Flush() error
}

// NewRenderer constructs renderer for the given output format. Empty format
// means text.
func NewRenderer(format string, out io.Writer, header bool) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return &TextRenderer{out: bufio.NewWriterSize(out, textBufferSize), header: header}, nil
	case FormatJSON:
		return &JSONRenderer{out: out}, nil
	case FormatYAML:
		return &YAMLRenderer{out: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format '%s'", format)
	}
}

// FormatRow returns row in textual form: 0/1 per variable followed by
// result, separated by spaces
func FormatRow(row types.Row) string {
	var b strings.Builder
	for _, v := range row.Values {
		b.WriteString(utils.BoolToBit(v))
		b.WriteByte(' ')
	}
	b.WriteString(utils.BoolToBit(row.Result))
	return b.String()
}

// TextRenderer streams one line per row
type TextRenderer struct {
	out    *bufio.Writer
	header bool
}

// Begin writes optional header line with variable names and the expression
func (r *TextRenderer) Begin(expression string, names types.VariableNames) error {
	if !r.header {
		return nil
	}
	_, err := fmt.Fprintf(r.out, "%s = %s\n", names, strings.TrimSpace(expression))
	return err
}

// Row writes one row
func (r *TextRenderer) Row(row types.Row) error {
	_, err := r.out.WriteString(FormatRow(row) + "\n")
	return err
}

// End flushes the output
func (r *TextRenderer) End(_ *types.ReportMessage) error {
	return r.out.Flush()
}

// Flush writes rows buffered so far
func (r *TextRenderer) Flush() error {
	return r.out.Flush()
}

// JSONRenderer writes the whole report as one JSON document
type JSONRenderer struct {
	out io.Writer
}

// Begin does nothing for JSON output
func (r *JSONRenderer) Begin(string, types.VariableNames) error {
	return nil
}

// Row does nothing for JSON output, rows are part of the report
func (r *JSONRenderer) Row(types.Row) error {
	return nil
}

// End encodes the report
func (r *JSONRenderer) End(report *types.ReportMessage) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "    ")
	return encoder.Encode(report)
}

// Flush does nothing, partial JSON document is never written
func (r *JSONRenderer) Flush() error {
	return nil
}

// YAMLRenderer writes the whole report as one YAML document
type YAMLRenderer struct {
	out io.Writer
}

// Begin does nothing for YAML output
func (r *YAMLRenderer) Begin(string, types.VariableNames) error {
	return nil
}

// Row does nothing for YAML output, rows are part of the report
func (r *YAMLRenderer) Row(types.Row) error {
	return nil
}

// End encodes the report
func (r *YAMLRenderer) End(report *types.ReportMessage) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}

// Flush does nothing, partial YAML document is never written
func (r *YAMLRenderer) Flush() error {
	return nil
}
