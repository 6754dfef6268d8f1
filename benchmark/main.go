// Package main provides a performance benchmarking tool for the trendline CLI.
// It generates synthetic record sets of different sizes, imports each one into a
// fresh SQLite store and measures the view commands, running each test multiple
// times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - trendline binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated CSV files and SQLite databases
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// Dataset describes one synthetic record set.
type Dataset struct {
	Name   string
	Groups int
	Months int
	PerMonth int // Records per group and month
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Datasets    []Dataset
	Commands    []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Datasets: []Dataset{
			{Name: "small", Groups: 20, Months: 24, PerMonth: 2},
			{Name: "medium", Groups: 500, Months: 36, PerMonth: 4},
			{Name: "large", Groups: 5000, Months: 60, PerMonth: 4},
		},
		Commands: []string{"series", "table", "view"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the trendline binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("trendline"); err != nil {
		return fmt.Errorf("trendline binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks prepares every dataset and benchmarks each command on it
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, ds := range config.Datasets {
		fmt.Printf("Preparing %s (%d groups, %d months)\n", ds.Name, ds.Groups, ds.Months)
		env, err := prepareDataset(config, ds)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", ds.Name, err)
			continue
		}
		window := strconv.Itoa(min(ds.Months, 24))
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, ds, env, command, "--window", window, "--anchor", anchorFor(ds)))
		}
	}

	return results
}

// anchorFor returns the last day of the dataset's final month.
func anchorFor(ds Dataset) string {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, ds.Months, -1).Format("2006-01-02")
}

// prepareDataset writes a synthetic CSV and imports it into a fresh store.
func prepareDataset(config BenchmarkConfig, ds Dataset) ([]string, error) {
	dir := filepath.Join(config.WorkDir, ds.Name)
	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(dir, "records.csv")
	if err := writeRecords(csvPath, ds); err != nil {
		return nil, fmt.Errorf("failed to write records: %w", err)
	}

	env := []string{
		"TRENDLINE_STORE_BACKEND=sqlite",
		"TRENDLINE_STORE_DB_CONNECT=" + filepath.Join(dir, "store.db"),
		"TRENDLINE_CACHE_DB_CONNECT=" + filepath.Join(dir, "cache.db"),
		"TRENDLINE_COLOR=no",
	}
	cmd := exec.Command("trendline", "import", "records", csvPath)
	cmd.Env = append(os.Environ(), env...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("import failed: %v\nOutput: %s", err, string(output))
	}
	return env, nil
}

// writeRecords generates a deterministic records CSV for the dataset.
func writeRecords(path string, ds Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(uint64(ds.Groups), uint64(ds.Months)))
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"date", "group_key", "group_name", "value", "quantity"}); err != nil {
		return err
	}

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for m := range ds.Months {
		month := start.AddDate(0, m, 0)
		for g := range ds.Groups {
			for i := range ds.PerMonth {
				day := month.AddDate(0, 0, (i*7)%28)
				qty := 1 + rng.IntN(50)
				value := float64(qty) * (5 + float64(g%17))
				if err := writer.Write([]string{
					day.Format("2006-01-02"),
					fmt.Sprintf("G%05d", g),
					fmt.Sprintf("Group %d", g),
					strconv.FormatFloat(value, 'f', 2, 64),
					strconv.Itoa(qty),
				}); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, ds Dataset, env []string, command string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, ds.Name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, env, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     ds.Name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a trendline command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, env []string, command string, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{command, "--cache-backend", cacheBackend}, extraArgs...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("trendline", args...)
		cmd.Env = append(os.Environ(), env...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "View built in") && strings.Contains(outputStr, "Store backend")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/trendline_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
