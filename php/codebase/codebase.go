package codebase

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/phpast/format"
	"github.com/dhamidi/phpast/php/parser"
	"github.com/dhamidi/phpast/project"
)

var log = commonlog.GetLogger("phpast.codebase")

// Codebase holds the parse results of every file of a project. All files
// share the compiled grammar; parsing happens outside the lock.
type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	AST      *parser.Node
	ParseErr error
	Symbols  []format.Symbol
}

// SyntaxError returns the parse failure of the file, if it is one.
func (f *FileInfo) SyntaxError() *parser.SyntaxError {
	var serr *parser.SyntaxError
	if errors.As(f.ParseErr, &serr) {
		return serr
	}
	return nil
}

func New(proj *project.Project) *Codebase {
	return &Codebase{
		project: proj,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// Parse parses content as the file at path without storing it.
func Parse(path string, content []byte) (fi *FileInfo) {
	fi = &FileInfo{Path: path, Content: content}
	defer func() {
		if r := recover(); r != nil {
			fi.AST = nil
			fi.ParseErr = fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	fi.AST, fi.ParseErr = parser.Parse(content, parser.WithFile(path))
	if fi.AST != nil {
		fi.Symbols = format.Outline(fi.AST)
	}
	return fi
}

// ScanAll parses every file of the project with the configured number of
// workers. It returns the first read error; parse failures are recorded
// per file.
func (c *Codebase) ScanAll() error {
	paths, err := c.project.Files()
	if err != nil {
		return err
	}

	workers := c.project.Config.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	errs := make(chan error, len(paths))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := c.ScanFile(path); err != nil {
					errs <- err
				}
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(errs)

	log.Infof("scanned %d files in %s", len(paths), c.project.RootDir)
	return <-errs
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read php file: %w", err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content and replaces what is known about path.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	fi := Parse(path, content)
	if fi.ParseErr != nil {
		log.Debugf("%s", fi.ParseErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = fi
	return fi
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns all known files ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	c.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Failures returns the files that did not parse, ordered by path.
func (c *Codebase) Failures() []*FileInfo {
	var failed []*FileInfo
	for _, f := range c.Files() {
		if f.ParseErr != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// NodeAt returns the innermost node of the file covering the 1-based
// line and byte column, or nil.
func (c *Codebase) NodeAt(path string, line, column int) *parser.Node {
	f := c.GetFile(path)
	if f == nil || f.AST == nil {
		return nil
	}
	return NodeAt(f.AST, parser.Position{Line: line, Column: column})
}

// NodeAt returns the innermost node of root whose span contains pos.
func NodeAt(root *parser.Node, pos parser.Position) *parser.Node {
	var found *parser.Node
	parser.Walk(root, func(n *parser.Node) bool {
		span := n.Span()
		if !span.Start.IsValid() || !contains(span, pos) {
			return false
		}
		found = n
		return true
	})
	return found
}

func contains(span parser.Span, pos parser.Position) bool {
	return !before(pos, span.Start) && before(pos, span.End)
}

func before(a, b parser.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
