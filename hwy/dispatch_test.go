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

package hwy

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDispatchLevelString(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		want  string
	}{
		{DispatchScalar, "scalar"},
		{DispatchSSE2, "sse2"},
		{DispatchAVX2, "avx2"},
		{DispatchAVX512, "avx512"},
		{DispatchNEON, "neon"},
		{DispatchSVE, "sve"},
		{DispatchLevel(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestCurrentWidth(t *testing.T) {
	switch w := CurrentWidth(); w {
	case 16, 32, 64:
	default:
		t.Errorf("CurrentWidth() = %d, want 16, 32 or 64", w)
	}
	if CurrentName() != CurrentLevel().String() {
		t.Errorf("CurrentName() = %q, CurrentLevel() = %q", CurrentName(), CurrentLevel())
	}
	if CurrentLevel() == DispatchScalar && len(CurrentFeatures()) != 0 {
		t.Errorf("scalar mode reports features %v", CurrentFeatures())
	}
}

func TestMaxLanes(t *testing.T) {
	w := CurrentWidth()
	if got := MaxLanes[float64](); got != w/8 {
		t.Errorf("MaxLanes[float64]() = %d, want %d", got, w/8)
	}
	if got := MaxLanes[float32](); got != w/4 {
		t.Errorf("MaxLanes[float32]() = %d, want %d", got, w/4)
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("HWY_NO_SIMD", tt.val)
			if got := NoSimdEnv(); got != tt.want {
				t.Errorf("NoSimdEnv() with %q = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestLogDispatch(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	LogDispatch()

	out := buf.String()
	if !strings.Contains(out, "target="+CurrentName()) {
		t.Errorf("LogDispatch output %q missing target", out)
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil after SetLogger(nil)")
	}
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}
