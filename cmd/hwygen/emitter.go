// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"
)

// Generate returns the formatted source of a file holding one sumWidthW
// kernel per entry of widths. filename is only used for diagnostics.
func Generate(pkg, filename string, widths []int) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by hwygen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", pkg)

	for _, w := range widths {
		buf.WriteString("\n")
		emitSumKernel(&buf, w)
	}

	formatted, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}
	return formatted, nil
}

// emitSumKernel writes sumWidthW. The accumulators are folded left to
// right so every kernel matches sumWidthGeneric bit for bit.
func emitSumKernel(buf *bytes.Buffer, w int) {
	accs := make([]string, w)
	for i := range accs {
		accs[i] = fmt.Sprintf("s%d", i)
	}

	fmt.Fprintf(buf, "func sumWidth%d(v []float64) float64 {\n", w)
	fmt.Fprintf(buf, "\tvar %s float64\n", strings.Join(accs, ", "))
	fmt.Fprintf(buf, "\tfull := len(v) - len(v)%%%d\n", w)
	fmt.Fprintf(buf, "\tfor i := 0; i < full; i += %d {\n", w)
	if w == 1 {
		fmt.Fprintf(buf, "\t\ts0 += v[i]\n")
	} else {
		fmt.Fprintf(buf, "\t\tg := v[i : i+%d : i+%d]\n", w, w)
		for i, acc := range accs {
			fmt.Fprintf(buf, "\t\t%s += g[%d]\n", acc, i)
		}
	}
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\ttotal := %s\n", strings.Join(accs, " + "))
	fmt.Fprintf(buf, "\tfor _, x := range v[full:] {\n")
	fmt.Fprintf(buf, "\t\ttotal += x\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\treturn total\n")
	fmt.Fprintf(buf, "}\n")
}
