package format

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/dhamidi/phpast/php/parser"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing .php test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

var roundTripSamples = map[string]string{
	"class": `<?php
declare(strict_types=1);

namespace App\Http;



use App\Models\{User, Post as Article};

/**
 * A controller.
 */
final class Controller extends Base implements \Countable
{
    public function __construct(private readonly Repo $repo) {}

    public function count(): int
    {
        return count($this->repo->all(fn ($x) => $x?->id ?? 0));
    }
}
`,
	"template": "<html>\n<?php foreach ($items as $i): ?>\n  <li><?= $i ?></li>   \n<?php endforeach ?>\n</html>\n",
	"strings":  "<?php\n$a = \"x {$b['c']} $d->e\";  \n$f = <<<EOT\n  {$g}   \n  EOT;\n\n\n\n$h = `ls $dir`;\n",
}

func TestRoundTripSamples(t *testing.T) {
	names := make([]string, 0, len(roundTripSamples))
	for name := range roundTripSamples {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			runRoundTripTest(t, name+".php", []byte(roundTripSamples[name]))
		})
	}
}

// TestRoundTrip_Testcases runs round-trip tests on all .php files in the testcases directory.
// Each file becomes a subtest that can be targeted with: go test -run TestRoundTrip_Testcases/filename
// Use -filter to filter files by substring: go test ./format -filter=heredoc
func TestRoundTrip_Testcases(t *testing.T) {
	if os.Getenv("IN_GIT_PRECOMMIT") == "1" {
		t.Skip("skipping roundtrip tests during pre-commit")
	}

	dir := testcasesDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		for d := wd; d != filepath.Dir(d); d = filepath.Dir(d) {
			candidate := filepath.Join(d, "testcases")
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				dir = candidate
				break
			}
		}
		if dir == "" {
			t.Skip("testcases directory not found; use -testcases flag to specify")
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".php") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}

	if len(files) == 0 {
		t.Skipf("no .php files found in %s", dir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".php")

		t.Run(testName, func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read file: %v", err)
			}
			runRoundTripTest(t, file, source)
		})
	}
}

// runRoundTripTest checks that printing reproduces the source and that
// trimming whitespace leaves the tree unchanged.
func runRoundTripTest(t *testing.T, filename string, source []byte) {
	orig, err := parser.Parse(source, parser.WithFile(filename))
	if err != nil {
		t.Skipf("original file does not parse: %v", err)
	}

	printed, err := NewSourceEncoder(nil).MarshalText(orig)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if string(printed) != string(source) {
		t.Fatalf("printed source differs from input\n\n=== got ===\n%s", printed)
	}

	enc := NewSourceEncoder(nil)
	enc.TrimTrailingSpace = true
	enc.MaxBlankLines = 1
	formatted, err := enc.MarshalText(orig)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	fmtAST, err := parser.Parse(formatted, parser.WithFile(filename))
	if err != nil {
		t.Errorf("formatted output does not parse: %v", err)
		t.Logf("\n=== Formatted output ===\n%s", formatted)
		return
	}

	diffs := compareNodeCounts(countNodeKinds(orig), countNodeKinds(fmtAST))
	if len(diffs) > 0 {
		t.Errorf("node count mismatch after formatting:\n\n%s", formatDiffs(diffs))
	}

	again, err := enc.MarshalText(fmtAST)
	if err != nil {
		t.Fatalf("format again: %v", err)
	}
	if string(again) != string(formatted) {
		t.Errorf("formatting is not idempotent\n\n=== first ===\n%s\n=== second ===\n%s", formatted, again)
	}
}

// NodeCountDiff represents a difference in node counts between original and formatted trees
type NodeCountDiff struct {
	Kind      parser.Kind
	Original  int
	Formatted int
}

func countNodeKinds(node *parser.Node) map[parser.Kind]int {
	counts := make(map[parser.Kind]int)
	parser.Walk(node, func(n *parser.Node) bool {
		counts[n.Kind]++
		return true
	})
	return counts
}

func compareNodeCounts(orig, formatted map[parser.Kind]int) []NodeCountDiff {
	kinds := make(map[parser.Kind]bool)
	for k := range orig {
		kinds[k] = true
	}
	for k := range formatted {
		kinds[k] = true
	}

	var diffs []NodeCountDiff
	for k := range kinds {
		if orig[k] != formatted[k] {
			diffs = append(diffs, NodeCountDiff{Kind: k, Original: orig[k], Formatted: formatted[k]})
		}
	}
	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Kind < diffs[j].Kind
	})
	return diffs
}

func formatDiffs(diffs []NodeCountDiff) string {
	var sb strings.Builder
	for _, d := range diffs {
		fmt.Fprintf(&sb, "  %s: %d -> %d\n", d.Kind, d.Original, d.Formatted)
	}
	return sb.String()
}
