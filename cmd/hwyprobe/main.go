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

// Command hwyprobe exercises the hwycore primitives from the command line.
//
// Usage:
//
//	hwyprobe info
//	hwyprobe sum 1 2 3 4 5
//	hwyprobe sum --file values.txt
//	hwyprobe count --goroutines 8 --iterations 100000
//	hwyprobe bench --size 1048576 --rounds 20
//
// Every command accepts --config (YAML defaults) and --verbose.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/hwycore/hwy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// probe carries state shared by all subcommands.
type probe struct {
	configPath string
	verbose    bool
	cfg        *Config
}

func newRootCmd() *cobra.Command {
	p := &probe{cfg: &Config{}}

	rootCmd := &cobra.Command{
		Use:   "hwyprobe",
		Short: "Exercise the hwycore sum reduction, counter and allocator",
		Long: `hwyprobe runs the hwycore primitives against real input.

It reports the detected SIMD level, sums numbers with the lane-accumulator
reducer, drives a shared counter from many goroutines, and benchmarks the
reducer against a naive loop and github.com/viterin/vek.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: p.setup,
	}
	rootCmd.PersistentFlags().StringVar(&p.configPath, "config", os.Getenv("HWYPROBE_CONFIG"), "YAML file with flag defaults")
	rootCmd.PersistentFlags().BoolVarP(&p.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		p.newInfoCmd(),
		p.newSumCmd(),
		p.newCountCmd(),
		p.newBenchCmd(),
	)
	return rootCmd
}

// setup loads the config file and installs the logger.
func (p *probe) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(p.configPath)
	if err != nil {
		return err
	}
	p.cfg = cfg

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if p.verbose {
		level = slog.LevelDebug
	}
	hwy.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	hwy.LogDispatch()
	return nil
}

// intFlag returns the named flag if it was set, else fromConfig if it is
// positive, else the flag's default.
func intFlag(cmd *cobra.Command, name string, fromConfig int) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, err
	}
	if !cmd.Flags().Changed(name) && fromConfig > 0 {
		return fromConfig, nil
	}
	return v, nil
}
