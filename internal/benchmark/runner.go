package benchmark

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Runner runs Go benchmarks and collects their results.
type Runner interface {
	Run(ctx context.Context, packages []string) (Run, error)
}

// GoRunner shells out to 'go test -bench'.
type GoRunner struct {
	// Pattern is passed to -bench; empty means every benchmark.
	Pattern string
	// Count is passed to -count when positive.
	Count int
}

// execCommand is replaced in tests.
var execCommand = exec.CommandContext

// Sub-benchmark names may contain '/', '=' and other punctuation, so the name
// runs up to the first whitespace, minus the optional -GOMAXPROCS suffix.
var benchRegex = regexp.MustCompile(`^(Benchmark\S+?)(?:-\d+)?\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)

func NewGoRunner(pattern string) *GoRunner {
	return &GoRunner{Pattern: pattern}
}

func (r *GoRunner) Args(packages []string) []string {
	pattern := r.Pattern
	if pattern == "" {
		pattern = "."
	}
	args := []string{"test", "-run=^$", "-bench=" + pattern, "-benchmem"}
	if r.Count > 0 {
		args = append(args, "-count="+strconv.Itoa(r.Count))
	}
	if len(packages) == 0 {
		packages = []string{"./..."}
	}
	return append(args, packages...)
}

func (r *GoRunner) Run(ctx context.Context, packages []string) (Run, error) {
	cmd := execCommand(ctx, "go", r.Args(packages)...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return Run{}, fmt.Errorf("benchmark execution failed: %w\nOutput:\n%s", err, out.String())
	}

	return Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    SourceGoBench,
		Results:   ParseOutput(out.String()),
	}, nil
}

// ParseOutput parses 'go test -bench' output. Names produced by the harness
// adapter (BenchmarkX/N=10/Key=Int/Variant) are split back into group,
// params and variant; the recorded name is then the case id.
func ParseOutput(output string) []Result {
	var results []Result
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		m := benchRegex.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		res := Result{Name: m[1], Status: "passed", Samples: 1}
		res.Iterations, _ = strconv.ParseInt(m[2], 10, 64)
		res.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
		if m[4] != "" {
			res.MBPerSec, _ = strconv.ParseFloat(m[4], 64)
		}
		if m[5] != "" {
			res.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
		}
		if m[6] != "" {
			res.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		if group, params, variant, ok := SplitCaseName(res.Name); ok {
			res.Group, res.Params, res.Variant = group, params, variant
			res.Name = caseID(group, params, variant)
		}

		results = append(results, res)
	}

	return results
}

// SplitCaseName splits a sub-benchmark name of the form
// BenchmarkGroup[/axis=value...]/Variant. Top-level benchmarks without a
// variant segment are not cases.
func SplitCaseName(name string) (group, params, variant string, ok bool) {
	parts := strings.Split(strings.TrimPrefix(name, "Benchmark"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return "", "", "", false
	}
	variant = parts[len(parts)-1]
	mid := parts[1 : len(parts)-1]
	for _, p := range mid {
		if !strings.Contains(p, "=") {
			return "", "", "", false
		}
	}
	return parts[0], strings.Join(mid, "/"), variant, true
}

func caseID(group, params, variant string) string {
	if params == "" {
		return group + "/" + variant
	}
	return group + "/" + params + "/" + variant
}
