package main

import (
	"testing"

	"go.lsp.dev/protocol"
)

func edit(sl, sc, el, ec uint32, text string) protocol.TextDocumentContentChangeEvent {
	return protocol.TextDocumentContentChangeEvent{
		Range: protocol.Range{
			Start: protocol.Position{Line: sl, Character: sc},
			End:   protocol.Position{Line: el, Character: ec},
		},
		Text: text,
	}
}

func TestApplyChange(t *testing.T) {
	tests := []struct {
		name    string
		content string
		change  protocol.TextDocumentContentChangeEvent
		want    string
	}{
		{
			name:    "replace within line",
			content: "1..2\nok 1 - alpha\n",
			change:  edit(1, 7, 1, 12, "beta"),
			want:    "1..2\nok 1 - beta\n",
		},
		{
			name:    "insert at document start",
			content: "1..1\nok 1\n",
			change:  edit(0, 0, 0, 0, "TAP version 13\n"),
			want:    "TAP version 13\n1..1\nok 1\n",
		},
		{
			name:    "delete across lines",
			content: "1..2\nok 1\nok 2\n",
			change:  edit(1, 0, 2, 0, ""),
			want:    "1..2\nok 2\n",
		},
		{
			name:    "edit after multibyte text",
			content: "1..1\nok 1 - café über\n",
			change:  edit(1, 12, 1, 16, "unter"),
			want:    "1..1\nok 1 - café unter\n",
		},
		{
			name:    "append at end",
			content: "1..2\nok 1\n",
			change:  edit(2, 0, 2, 0, "ok 2\n"),
			want:    "1..2\nok 1\nok 2\n",
		},
	}
	for _, tt := range tests {
		if got := applyChange(tt.content, tt.change); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
