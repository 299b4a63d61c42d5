package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/viterin/vek"

	"github.com/ajroetker/hwycore/hwy"
	"github.com/ajroetker/hwycore/hwy/contrib/alloc"
	"github.com/ajroetker/hwycore/hwy/contrib/counter"
	"github.com/ajroetker/hwycore/hwy/contrib/vec"
	"github.com/ajroetker/hwycore/hwy/contrib/workerpool"
)

func (p *probe) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected SIMD target and reducer layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SIMD level:      %s\n", hwy.CurrentName())
			fmt.Fprintf(out, "Register width:  %d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(out, "CPU features:    %s\n", strings.Join(hwy.CurrentFeatures(), ","))
			fmt.Fprintf(out, "float64 lanes:   %d per register\n", hwy.MaxLanes[float64]())
			fmt.Fprintf(out, "Sum lane width:  %d\n", vec.Width)
			fmt.Fprintf(out, "Max allocation:  %d bytes\n", alloc.MaxSize())
			fmt.Fprintf(out, "vek accelerated: %t\n", vek.Info().Acceleration)
			return nil
		},
	}
}

func (p *probe) newSumCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sum [values...]",
		Short: "Sum float64 values with the lane-accumulator reducer",
		Long: `Sum reads values from the arguments, or one per line from --file
("-" for stdin). Blank lines and lines starting with # are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var values []float64
			var err error
			switch {
			case file != "" && len(args) > 0:
				return fmt.Errorf("sum: give values or --file, not both")
			case file == "-":
				values, err = readValues(cmd.InOrStdin())
			case file != "":
				values, err = readValuesFile(file)
			default:
				values, err = parseValues(args)
			}
			if err != nil {
				return err
			}

			full, tail := vec.SplitTail(len(values), vec.Width)
			hwy.Logger().Debug("sum", "n", len(values), "lane_elems", full, "tail_elems", tail)
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(vec.Sum(values), 'g', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `File with one value per line ("-" for stdin)`)
	return cmd
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}
		values = append(values, v)
	}
	return values, nil
}

func readValuesFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sum: %w", err)
	}
	defer f.Close()
	return readValues(f)
}

func readValues(r io.Reader) ([]float64, error) {
	var values []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("sum: line %d: %w", line, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sum: %w", err)
	}
	return values, nil
}

func (p *probe) newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Increment one shared counter from many goroutines",
		Long: `Count starts a worker pool with --goroutines workers, has each call
Increment --iterations times on the same counter, and checks that no
update was lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goroutines, err := intFlag(cmd, "goroutines", p.cfg.Count.Goroutines)
			if err != nil {
				return err
			}
			iterations, err := intFlag(cmd, "iterations", p.cfg.Count.Iterations)
			if err != nil {
				return err
			}
			if goroutines < 1 || iterations < 0 {
				return fmt.Errorf("count: need goroutines >= 1 and iterations >= 0")
			}

			got, elapsed := runCount(goroutines, iterations)
			want := int64(goroutines) * int64(iterations)
			fmt.Fprintf(cmd.OutOrStdout(), "count=%d expected=%d goroutines=%d iterations=%d elapsed=%s\n",
				got, want, goroutines, iterations, elapsed.Round(time.Microsecond))
			if got != want {
				return fmt.Errorf("count: lost updates: got %d, want %d", got, want)
			}
			return nil
		},
	}
	cmd.Flags().IntP("goroutines", "t", 8, "Number of concurrent goroutines")
	cmd.Flags().IntP("iterations", "k", 100000, "Increments per goroutine")
	return cmd
}

// runCount hammers one counter from goroutines pool workers.
func runCount(goroutines, iterations int) (int64, time.Duration) {
	pool := workerpool.New(goroutines)
	defer pool.Close()

	c := counter.New()
	start := time.Now()
	pool.ParallelForAtomic(goroutines, func(int) {
		for range iterations {
			c.Increment()
		}
	})
	return c.Load(), time.Since(start)
}

func (p *probe) newBenchCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time vec.Sum against a naive loop and vek.Sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := intFlag(cmd, "size", p.cfg.Bench.Size)
			if err != nil {
				return err
			}
			rounds, err := intFlag(cmd, "rounds", p.cfg.Bench.Rounds)
			if err != nil {
				return err
			}
			if size < 1 || rounds < 1 {
				return fmt.Errorf("bench: need size >= 1 and rounds >= 1")
			}
			if size > math.MaxInt/8 {
				return fmt.Errorf("bench: size %d is too large", size)
			}
			if !cmd.Flags().Changed("seed") && p.cfg.Bench.Seed != 0 {
				seed = p.cfg.Bench.Seed
			}

			buf, err := alloc.AllocateAligned(size*8, alloc.CacheLineSize)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			data := float64View(buf, size)
			r := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
			for i := range data {
				data[i] = r.Float64()*2 - 1
			}

			results := runBench(data, rounds)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size=%d rounds=%d level=%s\n", size, rounds, hwy.CurrentName())
			for _, res := range results {
				fmt.Fprintf(out, "%-8s %12s/op %8.2f GB/s  sum=%.17g  diff=%.3g\n",
					res.name, res.perOp.Round(time.Nanosecond), res.gbps, res.sum, res.sum-results[0].sum)
			}
			return nil
		},
	}
	cmd.Flags().IntP("size", "n", 1<<20, "Number of float64 values")
	cmd.Flags().IntP("rounds", "r", 20, "Timed rounds per kernel")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed for the input")
	return cmd
}

type benchResult struct {
	name  string
	sum   float64
	perOp time.Duration
	gbps  float64
}

func runBench(data []float64, rounds int) []benchResult {
	kernels := []struct {
		name string
		fn   func([]float64) float64
	}{
		{"vec", vec.Sum},
		{"naive", naiveSum},
		{"vek", vek.Sum},
	}

	results := make([]benchResult, 0, len(kernels))
	for _, k := range kernels {
		var sum float64
		start := time.Now()
		for range rounds {
			sum = k.fn(data)
		}
		perOp := time.Since(start) / time.Duration(rounds)
		gbps := 0.0
		if perOp > 0 {
			gbps = float64(len(data)*8) / perOp.Seconds() / 1e9
		}
		results = append(results, benchResult{name: k.name, sum: sum, perOp: perOp, gbps: math.Round(gbps*100) / 100})
	}
	return results
}

func naiveSum(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}
