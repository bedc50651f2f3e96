package codebase

import (
	"os"
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"

	"github.com/dhamidi/phpast/php/parser"
	"github.com/dhamidi/phpast/project"
)

func newTestCodebase(t *testing.T) (*Codebase, *fs.Dir) {
	t.Helper()
	dir := fs.NewDir(t, "codebase",
		fs.WithFile("ok.php", "<?php\nfunction f() {}\n"),
		fs.WithFile("bad.php", "<?php\n$a = ;\n"),
		fs.WithDir("vendor", fs.WithFile("x.php", "<?php (")),
	)
	t.Cleanup(dir.Remove)

	proj, err := project.LoadFrom(dir.Path())
	assert.NilError(t, err)
	return New(proj), dir
}

func TestScanAll(t *testing.T) {
	cb, dir := newTestCodebase(t)
	assert.NilError(t, cb.ScanAll())

	files := cb.Files()
	assert.Assert(t, is.Len(files, 2))
	assert.Equal(t, files[0].Path, dir.Join("bad.php"))
	assert.Equal(t, files[1].Path, dir.Join("ok.php"))

	failed := cb.Failures()
	assert.Assert(t, is.Len(failed, 1))
	serr := failed[0].SyntaxError()
	assert.Assert(t, serr != nil)
	assert.Equal(t, serr.Line, 2)
	assert.Equal(t, serr.File, dir.Join("bad.php"))

	ok := cb.GetFile(dir.Join("ok.php"))
	assert.NilError(t, ok.ParseErr)
	assert.Assert(t, is.Len(ok.Symbols, 1))
	assert.Equal(t, ok.Symbols[0].Name, "f")
}

func TestUpdateAndRemove(t *testing.T) {
	cb, dir := newTestCodebase(t)
	path := dir.Join("bad.php")

	fi := cb.UpdateFile(path, []byte("<?php $a = 1;"))
	assert.NilError(t, fi.ParseErr)
	assert.Equal(t, cb.GetFile(path), fi)
	assert.Assert(t, is.Len(cb.Failures(), 0))

	cb.RemoveFile(path)
	assert.Assert(t, cb.GetFile(path) == nil)
}

func TestNodeAt(t *testing.T) {
	cb, dir := newTestCodebase(t)
	path := dir.Join("ok.php")
	assert.NilError(t, cb.ScanFile(path))

	n := cb.NodeAt(path, 2, 10)
	assert.Assert(t, n != nil)
	assert.Equal(t, n.Kind, parser.KindName)
	assert.Equal(t, n.TokenLiteral(), "f")
	assert.Equal(t, n.Parent.Kind, parser.KindFunctionDeclaration)

	assert.Assert(t, cb.NodeAt(path, 9, 1) == nil)
	assert.Assert(t, cb.NodeAt("missing.php", 1, 1) == nil)
}

func TestWatcherScan(t *testing.T) {
	cb, dir := newTestCodebase(t)
	w := NewFileWatcher(cb)
	events := map[string]bool{}
	w.OnChange = func(path string, fi *FileInfo) {
		events[path] = fi != nil
	}

	w.scan()
	assert.DeepEqual(t, events, map[string]bool{dir.Join("ok.php"): true, dir.Join("bad.php"): true})

	events = map[string]bool{}
	w.scan()
	assert.Assert(t, is.Len(events, 0))

	assert.NilError(t, os.WriteFile(dir.Join("new.php"), []byte("<?php echo 1;"), 0o644))
	assert.NilError(t, os.Remove(dir.Join("bad.php")))
	w.scan()
	assert.DeepEqual(t, events, map[string]bool{dir.Join("new.php"): true, dir.Join("bad.php"): false})
	assert.Assert(t, cb.GetFile(dir.Join("bad.php")) == nil)
	assert.Assert(t, cb.GetFile(dir.Join("new.php")) != nil)
}

func TestWatcherSkip(t *testing.T) {
	cb, dir := newTestCodebase(t)
	w := NewFileWatcher(cb)
	w.Skip = func(path string) bool { return strings.HasSuffix(path, "ok.php") }

	w.scan()
	assert.Assert(t, cb.GetFile(dir.Join("ok.php")) == nil)
	assert.Assert(t, cb.GetFile(dir.Join("bad.php")) != nil)
}

func TestDiagnostics(t *testing.T) {
	fi := Parse("bad.php", []byte("<?php\n$é = ;\n"))
	diags := Diagnostics(fi)
	assert.Assert(t, is.Len(diags, 1))
	d := diags[0]
	assert.Equal(t, d.Range.Start.Line, protocol.UInteger(1))
	assert.Equal(t, *d.Severity, protocol.DiagnosticSeverityError)
	assert.Assert(t, !strings.Contains(d.Message, "bad.php"))

	assert.Assert(t, is.Len(Diagnostics(Parse("ok.php", []byte("<?php"))), 0))
	assert.Assert(t, is.Len(Diagnostics(nil), 0))
}

func TestPositionConversion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     parser.Position
		want    protocol.Position
	}{
		{"ascii", "<?php\n$a;", parser.Position{Line: 2, Column: 2}, protocol.Position{Line: 1, Character: 1}},
		{"astral", "<?php\n'😀'.$b;", parser.Position{Line: 2, Column: 8}, protocol.Position{Line: 1, Character: 5}},
		{"two byte", "<?php\n$é = 1;", parser.Position{Line: 2, Column: 5}, protocol.Position{Line: 1, Character: 3}},
		{"bom", "\ufeff<?php $a;", parser.Position{Line: 1, Column: 7}, protocol.Position{Line: 0, Character: 6}},
		{"crlf", "<?php\r\n$a;\r\n", parser.Position{Line: 2, Column: 4}, protocol.Position{Line: 1, Character: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lspPosition([]byte(tt.content), tt.pos)
			assert.Equal(t, got, tt.want)
			assert.Equal(t, parserPosition([]byte(tt.content), got), tt.pos)
		})
	}
}

func TestDocumentSymbols(t *testing.T) {
	fi := Parse("a.php", []byte("<?php\nclass A {\n  public function b() {}\n}\n"))
	syms := DocumentSymbols(fi)
	assert.Assert(t, is.Len(syms, 1))
	assert.Equal(t, syms[0].Name, "A")
	assert.Equal(t, syms[0].Kind, protocol.SymbolKindClass)
	assert.Equal(t, syms[0].Range.Start, protocol.Position{Line: 1, Character: 0})
	assert.Equal(t, syms[0].Range.End, protocol.Position{Line: 3, Character: 1})

	method := syms[0].Children[0]
	assert.Equal(t, method.Name, "b")
	assert.Equal(t, method.Kind, protocol.SymbolKindMethod)
	assert.Equal(t, method.SelectionRange.Start, protocol.Position{Line: 2, Character: 18})
}

func TestHover(t *testing.T) {
	fi := Parse("ok.php", []byte("<?php\nfunction f() {}\n"))
	h := Hover(fi, protocol.Position{Line: 1, Character: 9})
	assert.Assert(t, h != nil)

	content := h.Contents.(protocol.MarkupContent)
	assert.Assert(t, strings.HasPrefix(content.Value, "**Name**"))
	assert.Assert(t, strings.HasSuffix(content.Value, "FunctionDeclaration > Name"))
	assert.Equal(t, h.Range.Start, protocol.Position{Line: 1, Character: 9})

	h = Hover(fi, protocol.Position{Line: 1, Character: 0})
	content = h.Contents.(protocol.MarkupContent)
	assert.Assert(t, strings.HasPrefix(content.Value, "**FunctionDeclaration**"))
}

func TestHoverDocComment(t *testing.T) {
	fi := Parse("doc.php", []byte("<?php\n/**\n * Says hi.\n * @return string\n */\nfunction hi() {}\n"))

	h := Hover(fi, protocol.Position{Line: 5, Character: 9})
	content := h.Contents.(protocol.MarkupContent)
	assert.Assert(t, strings.HasSuffix(content.Value, "---\n\nSays hi.\n\n_@return_ `string`"), content.Value)

	syms := DocumentSymbols(fi)
	assert.Assert(t, is.Len(syms, 1))
	assert.Assert(t, syms[0].Detail != nil)
	assert.Equal(t, *syms[0].Detail, "Says hi.")
}
