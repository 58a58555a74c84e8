package main

import (
	"context"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/signadot/go-tap/debug"
	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/parse"
	"github.com/signadot/go-tap/validate"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	doc     *ir.Document
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	// lenient parsing cannot fail on any input; violations land on
	// doc.Warnings
	doc, err := parse.ParseString(content)
	if err != nil {
		doc = nil
	}
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		doc:     doc,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.diagnoseDocument(doc)
	if debug.LSP() {
		debug.Logf("%s: %d diagnostics\n", uri, len(diagnostics))
	}

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

// diagnoseDocument turns parse warnings and validation findings into
// LSP diagnostics.  Warnings point at their line; validation reasons
// describe the document as a whole and attach to the first line.
func (s *Server) diagnoseDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.doc == nil {
		return diagnostics
	}

	for _, w := range doc.doc.Warnings {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(doc.content, w.Line),
			Severity: protocol.DiagnosticSeverityWarning,
			Message:  w.Error(),
			Source:   "tap",
		})
	}

	if res := validate.Check(doc.doc); !res.Valid {
		for _, reason := range res.Reasons {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    lineRange(doc.content, 1),
				Severity: protocol.DiagnosticSeverityInformation,
				Message:  reason,
				Source:   "tap",
			})
		}
	}

	return diagnostics
}

// lineRange spans one 1-based input line in 0-based protocol terms.
func lineRange(content string, line int) protocol.Range {
	if line < 1 {
		line = 1
	}
	lines := strings.Split(content, "\n")
	width := 0
	if line <= len(lines) {
		width = len(lines[line-1])
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1), Character: 0},
		End:   protocol.Position{Line: uint32(line - 1), Character: uint32(width)},
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// applyChange splices one incremental edit into content.  The server
// advertises incremental sync, so every event carries a range; an
// empty range at 0:0 is an insertion at the start of the document,
// not a full replacement.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	runes := []rune(content)
	start := lineColToOffset(runes, int(change.Range.Start.Line), int(change.Range.Start.Character))
	end := lineColToOffset(runes, int(change.Range.End.Line), int(change.Range.End.Character))
	if end < start {
		return content
	}
	return string(runes[:start]) + change.Text + string(runes[end:])
}

// lineColToOffset converts a line/column position to a rune offset,
// matching the rune slicing in applyChange.
func lineColToOffset(runes []rune, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range runes {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
	}
	return len(runes)
}
