// Package main provides a performance benchmarking tool for the sprintlens CLI.
// It builds demo snapshots at several scales, runs each view multiple times,
// treats the first successful cached run as cold and averages the rest as warm,
// and writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - sprintlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where scaled snapshots are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/sprintlens/internal/snapshot"
	"github.com/huangsam/sprintlens/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scale       string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Scales      map[string]int
	ScaleOrder  []string
	Views       []viewCase
}

// viewCase is one CLI invocation and the footer phrase that marks success.
type viewCase struct {
	Command    string
	Args       []string
	Completion string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Scales:      map[string]int{"small": 1, "medium": 50, "large": 500},
		ScaleOrder:  []string{"small", "medium", "large"},
		Views: []viewCase{
			{Command: "cfd", Args: []string{"--days", "90"}, Completion: "Cumulative flow"},
			{Command: "sprint", Args: []string{"--sprint", "3"}, Completion: "Sprint analysis completed in"},
			{Command: "velocity", Completion: "Velocity"},
			{Command: "workload", Completion: "Workload for"},
			{Command: "overview", Completion: "Overview completed in"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("sprintlens", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	if err := login(config); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	paths, err := writeSnapshots(config)
	if err != nil {
		fmt.Printf("Failed to write snapshots: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, paths)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the sprintlens binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("sprintlens"); err != nil {
		return fmt.Errorf("sprintlens binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// sessionEnv points every run at a benchmark-only session file.
func sessionEnv(config BenchmarkConfig) []string {
	return append(os.Environ(),
		"SPRINTLENS_SESSION_FILE="+filepath.Join(config.WorkDir, "sprintlens_session.yaml"),
		"SPRINTLENS_API_TOKEN=benchmark-token",
	)
}

// login stores placeholder credentials for the view runs.
func login(config BenchmarkConfig) error {
	cmd := exec.Command("sprintlens", "login", "--url", "https://benchmark.example.net", "--email", "bench@example.net")
	cmd.Env = sessionEnv(config)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, output)
	}
	return nil
}

// writeSnapshots saves one demo snapshot per scale and returns their paths.
func writeSnapshots(config BenchmarkConfig) (map[string]string, error) {
	anchor := time.Now().UTC().Truncate(24 * time.Hour)
	paths := make(map[string]string, len(config.Scales))
	for _, name := range config.ScaleOrder {
		snap := scaleSnapshot(snapshot.Demo(anchor), config.Scales[name])
		path := filepath.Join(config.WorkDir, fmt.Sprintf("sprintlens_%s.json", name))
		if err := snapshot.Save(path, snap); err != nil {
			return nil, err
		}
		fmt.Printf("Wrote %s snapshot with %d issues\n", name, len(snap.Issues))
		paths[name] = path
	}
	return paths, nil
}

// scaleSnapshot repeats the issue set factor times with unique ids and keys.
func scaleSnapshot(snap *schema.Snapshot, factor int) *schema.Snapshot {
	if factor <= 1 {
		return snap
	}
	base := snap.Issues
	issues := make([]schema.Issue, 0, len(base)*factor)
	for copyIdx := range factor {
		for _, issue := range base {
			if copyIdx > 0 {
				issue.ID = fmt.Sprintf("%s-%d", issue.ID, copyIdx)
				issue.Key = fmt.Sprintf("%s-%d", issue.Key, copyIdx)
			}
			issues = append(issues, issue)
		}
	}
	snap.Issues = issues
	return snap
}

// runBenchmarks executes every view against every snapshot scale
func runBenchmarks(config BenchmarkConfig, paths map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scales, %d views, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.ScaleOrder), len(config.Views), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, scale := range config.ScaleOrder {
		fmt.Printf("Benchmarking %s\n", scale)
		for _, view := range config.Views {
			results = append(results, runBenchmarkSuite(config, scale, paths[scale], view))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a view
func runBenchmarkSuite(config BenchmarkConfig, scale, snapshotPath string, view viewCase) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", view.Command, scale)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, snapshotPath, view, cacheBackend, numRuns)
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

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scale:       scale,
		Command:     view.Command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a sprintlens view multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, snapshotPath string, view viewCase, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{view.Command, "--snapshot", snapshotPath, "--cache-backend", cacheBackend, "--color", "no"}
	args = append(args, view.Args...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("sprintlens", args...)
		cmd.Env = sessionEnv(config)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), view.Completion) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/sprintlens_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"scale", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Scale, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, view := range config.Views {
		fmt.Printf("%s:\n", view.Command)
		for _, result := range results {
			if result.Command == view.Command {
				fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Scale, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
