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

// Command hwygen generates the unrolled lane-accumulator kernels behind
// vec.SumWidth.
//
// Usage:
//
//	hwygen -widths 1,2,4,8 -output sum_width_gen.go
//
// Or via go:generate:
//
//	//go:generate go run ../../../cmd/hwygen -widths 1,2,4,8 -output sum_width_gen.go
//
// Each width W produces a function sumWidthW that keeps W scalar
// accumulators, one per lane, and walks the input in groups of W. The
// compiler turns the independent accumulators into packed adds where the
// target has them.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	widthsFlag = flag.String("widths", "1,2,4,8", "Comma-separated lane widths (positive powers of two)")
	outputFile = flag.String("output", "sum_width_gen.go", "Output file")
	packageOut = flag.String("pkg", "vec", "Output package name")
)

func main() {
	flag.Parse()

	widths, err := parseWidths(*widthsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	src, err := Generate(*packageOut, *outputFile, widths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputFile, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d kernels)\n", *outputFile, len(widths))
}

// parseWidths parses and validates the -widths flag.
func parseWidths(s string) ([]int, error) {
	var widths []int
	seen := make(map[int]bool)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", part, err)
		}
		if w < 1 || w&(w-1) != 0 {
			return nil, fmt.Errorf("width %d is not a positive power of two", w)
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		widths = append(widths, w)
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("no widths given")
	}
	return widths, nil
}
