package codebase

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/phpast/format"
	"github.com/dhamidi/phpast/php/parser"
	"github.com/dhamidi/phpast/php/phpdoc"
	"github.com/dhamidi/phpast/project"
)

const lsName = "phpast"

// LSPServer reports parse failures as diagnostics and serves document
// outlines and node kinds on hover.
type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu       sync.Mutex
	notify   glsp.NotifyFunc
	open     map[string]bool
	reported map[string]bool
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version:  version,
		open:     make(map[string]bool),
		reported: make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	proj, err := project.LoadFrom(rootDir)
	if err != nil {
		return nil, err
	}
	ls.codebase = New(proj)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Skip = ls.isOpen
	ls.watcher.OnChange = ls.publish
	ls.watcher.Start()
	log.Infof("watching %s", ls.codebase.RootDir())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	ls.open[path] = true
	ls.mu.Unlock()
	ls.publish(path, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(path, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()

	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(path, nil)
		return nil
	}
	ls.publish(path, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.publish(path, ls.codebase.UpdateFile(path, []byte(*params.Text)))
	} else if err := ls.codebase.ScanFile(path); err == nil {
		ls.publish(path, ls.codebase.GetFile(path))
	}
	return nil
}

// publish sends the diagnostics of a file. Files that parse and never
// failed before are skipped.
func (ls *LSPServer) publish(path string, fi *FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	failed := fi != nil && fi.ParseErr != nil
	if !failed && !ls.reported[path] {
		ls.mu.Unlock()
		return
	}
	ls.reported[path] = failed
	ls.mu.Unlock()

	if notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: Diagnostics(fi),
	})
}

// Diagnostics converts the parse failure of a file, if any.
func Diagnostics(fi *FileInfo) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if fi == nil || fi.ParseErr == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	start := protocol.Position{}
	message := fi.ParseErr.Error()
	if serr := fi.SyntaxError(); serr != nil {
		start = lspPosition(fi.Content, parser.Position{Line: serr.Line, Column: serr.Column})
		message = serr.Message
	}
	end := start
	end.Character++

	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil || file.AST == nil {
		return nil, nil
	}
	return DocumentSymbols(file), nil
}

// DocumentSymbols converts the outline of a file.
func DocumentSymbols(fi *FileInfo) []protocol.DocumentSymbol {
	return documentSymbols(fi.Content, fi.Symbols)
}

func documentSymbols(content []byte, syms []format.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		name := sym.Name
		if name == "" {
			name = sym.Kind
		}
		ds := protocol.DocumentSymbol{
			Name:           name,
			Kind:           symbolKind(sym.Kind),
			Range:          lspRange(content, sym.Node.Span()),
			SelectionRange: lspRange(content, nameNode(sym.Node).Span()),
			Children:       documentSymbols(content, sym.Children),
		}
		if summary := phpdoc.Summary(phpdoc.Of(sym.Node)); summary != "" {
			ds.Detail = &summary
		}
		out = append(out, ds)
	}
	return out
}

func symbolKind(kind string) protocol.SymbolKind {
	switch kind {
	case "namespace":
		return protocol.SymbolKindNamespace
	case "function":
		return protocol.SymbolKindFunction
	case "method":
		return protocol.SymbolKindMethod
	case "interface":
		return protocol.SymbolKindInterface
	case "enum":
		return protocol.SymbolKindEnum
	case "case":
		return protocol.SymbolKindEnumMember
	case "property":
		return protocol.SymbolKindProperty
	case "constant":
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindClass
	}
}

func nameNode(n *parser.Node) *parser.Node {
	for _, kind := range []parser.Kind{parser.KindName, parser.KindNamespaceName, parser.KindVariableIdentifier} {
		if name := n.FirstChildOfKind(kind); name != nil {
			return name
		}
	}
	return n
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil || file.AST == nil {
		return nil, nil
	}
	return Hover(file, params.Position), nil
}

// Hover describes the node under an LSP position: its kind, the kinds of
// its ancestors and the doc comment of the enclosing declaration.
func Hover(fi *FileInfo, at protocol.Position) *protocol.Hover {
	node := NodeAt(fi.AST, parserPosition(fi.Content, at))
	if node == nil {
		return nil
	}
	if node.Kind == parser.KindToken && node.Parent != nil {
		node = node.Parent
	}

	var kinds []string
	for n := node; n != nil; n = n.Parent {
		kinds = append([]string{n.Kind.String()}, kinds...)
	}

	value := "**" + node.Kind.String() + "**\n\n" + strings.Join(kinds, " > ")
	if doc := phpdoc.Markdown(phpdoc.Of(declarationOf(node))); doc != "" {
		value += "\n\n---\n\n" + doc
	}

	r := lspRange(fi.Content, node.Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &r,
	}
}

// declarationOf returns the innermost declaration holding n, or nil.
func declarationOf(n *parser.Node) *parser.Node {
	for ; n != nil; n = n.Parent {
		switch n.Kind {
		case parser.KindFunctionDeclaration, parser.KindMethodDeclaration,
			parser.KindClassDeclaration, parser.KindInterfaceDeclaration,
			parser.KindTraitDeclaration, parser.KindEnumDeclaration, parser.KindEnumCase,
			parser.KindPropertyDeclaration, parser.KindVariableDeclaration,
			parser.KindClassConstantDeclaration, parser.KindConstantDeclaration:
			return n
		}
	}
	return nil
}

func lspRange(content []byte, span parser.Span) protocol.Range {
	return protocol.Range{
		Start: lspPosition(content, span.Start),
		End:   lspPosition(content, span.End),
	}
}

// lspPosition converts a 1-based line and byte column into a zero-based
// position counted in UTF-16 units.
func lspPosition(content []byte, pos parser.Position) protocol.Position {
	if pos.Line < 1 {
		return protocol.Position{}
	}
	line := lineText(content, pos.Line)
	col := min(max(pos.Column-1, 0), len(line))

	units := 0
	for _, r := range string(line[:col]) {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(pos.Line - 1), Character: protocol.UInteger(units)}
}

// parserPosition is the inverse of lspPosition.
func parserPosition(content []byte, at protocol.Position) parser.Position {
	line := lineText(content, int(at.Line)+1)
	units, col := 0, 0
	for _, r := range string(line) {
		if units >= int(at.Character) {
			break
		}
		units += utf16.RuneLen(r)
		col += len(string(r))
	}
	return parser.Position{Line: int(at.Line) + 1, Column: col + 1}
}

var bom = []byte("\ufeff")

// lineText returns the 1-based line n without its line break. The byte
// order mark is not part of the first line.
func lineText(content []byte, n int) []byte {
	if n == 1 {
		content = bytes.TrimPrefix(content, bom)
	}
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(content, '\n')
		if idx < 0 {
			return nil
		}
		content = content[idx+1:]
	}
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx]
	}
	return bytes.TrimSuffix(content, []byte("\r"))
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
