// mctest runs the microc compiler over a tree of .mc sources and
// compares each listing against a sibling .s golden file.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
)

type Execution struct {
	Stdout   string        `json:"-"`
	Stderr   string        `json:"stderr,omitempty"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	TimedOut bool          `json:"timed_out,omitempty"`
}

type FileResult struct {
	File       string     `json:"file"`
	Status     string     `json:"status"` // PASS, FAIL, SKIP, ERROR
	Message    string     `json:"message,omitempty"`
	Diff       string     `json:"diff,omitempty"`
	SourceHash string     `json:"source_hash,omitempty"`
	Compile    *Execution `json:"compile,omitempty"`
}

var (
	compilerPath = flag.String("compiler", "./microc", "Path to the microc binary under test.")
	testFiles    = flag.String("test-files", "testdata/*.mc", "Glob pattern(s) for sources to test (space-separated).")
	update       = flag.Bool("update", false, "Rewrite golden .s files from the compiler's current output.")
	jobs         = flag.Int("j", 4, "Number of parallel test jobs.")
	timeout      = flag.Duration("timeout", 5*time.Second, "Timeout for each compiler invocation.")
	outputJSON   = flag.String("output", ".mctest_results.json", "Output file for the JSON report.")
	verbose      = flag.Bool("v", false, "Log every file, not just failures.")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	files, err := expandGlobs(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s invalid glob pattern(s): %v", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("no test files matched")
		return
	}

	results := runAll(files)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var passed, failed, skipped int
	for _, name := range names {
		res := results[name]
		switch res.Status {
		case "PASS":
			passed++
			if *verbose {
				log.Printf("%s[PASS]%s %s", cGreen, cNone, name)
			}
		case "SKIP":
			skipped++
			if *verbose {
				log.Printf("%s[SKIP]%s %s: %s", cYellow, cNone, name, res.Message)
			}
		default:
			failed++
			log.Printf("%s[%s]%s %s: %s", cRed, res.Status, cNone, name, res.Message)
			if res.Diff != "" {
				log.Print(res.Diff)
			}
		}
	}
	log.Printf("%d passed, %d failed, %d skipped", passed, failed, skipped)

	if data, err := json.MarshalIndent(results, "", "  "); err == nil {
		if err := os.WriteFile(*outputJSON, data, 0644); err != nil {
			log.Printf("%s[WARN]%s could not write report %s: %v", cYellow, cNone, *outputJSON, err)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runAll(files []string) map[string]*FileResult {
	tasks := make(chan string, len(files))
	resultsChan := make(chan *FileResult, len(files))
	var wg sync.WaitGroup

	for i := 0; i < *jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				resultsChan <- testFile(file)
			}
		}()
	}

	// Identical sources always compile identically, so only the first
	// of each content hash is run.
	seenHashes := make(map[string]string)
	for _, file := range files {
		hash, err := hashFile(file)
		if err != nil {
			resultsChan <- &FileResult{File: file, Status: "ERROR", Message: fmt.Sprintf("could not hash source: %v", err)}
			continue
		}
		if original, seen := seenHashes[hash]; seen {
			resultsChan <- &FileResult{File: file, Status: "SKIP", Message: "content identical to " + original}
			continue
		}
		seenHashes[hash] = file
		tasks <- file
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make(map[string]*FileResult)
	for res := range resultsChan {
		results[res.File] = res
	}
	return results
}

func testFile(file string) *FileResult {
	res := &FileResult{File: file}
	res.SourceHash, _ = hashFile(file)

	run := compile(file)
	res.Compile = run
	if run.TimedOut {
		res.Status = "FAIL"
		res.Message = "compiler timed out"
		return res
	}
	if run.ExitCode != 0 {
		res.Status = "FAIL"
		res.Message = fmt.Sprintf("compiler exited %d: %s", run.ExitCode, strings.TrimSpace(run.Stderr))
		return res
	}

	goldenPath := strings.TrimSuffix(file, filepath.Ext(file)) + ".s"
	if *update {
		if err := os.WriteFile(goldenPath, []byte(run.Stdout), 0644); err != nil {
			res.Status = "ERROR"
			res.Message = fmt.Sprintf("could not write golden: %v", err)
			return res
		}
		res.Status = "PASS"
		res.Message = "golden updated"
		return res
	}

	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		res.Status = "ERROR"
		res.Message = fmt.Sprintf("missing golden file %s (run with -update)", goldenPath)
		return res
	}
	if diff := cmp.Diff(string(golden), run.Stdout); diff != "" {
		res.Status = "FAIL"
		res.Message = "output differs from golden (-want +got)"
		res.Diff = diff
		return res
	}
	res.Status = "PASS"
	return res
}

func compile(file string) *Execution {
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, *compilerPath, file)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	run := &Execution{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		TimedOut: ctx.Err() == context.DeadlineExceeded,
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		run.ExitCode = exitErr.ExitCode()
	} else if err != nil {
		run.ExitCode = -1
		run.Stderr += err.Error()
	}
	return run
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data)), nil
}

func expandGlobs(patterns string) ([]string, error) {
	var files []string
	for _, pattern := range strings.Fields(patterns) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
