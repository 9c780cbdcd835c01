package web

import (
	"strings"
	"testing"
)

func TestIndexHTML(t *testing.T) {
	for _, want := range []string{"<title>YuktiAI</title>", "/api/chat", "/api/status"} {
		if !strings.Contains(IndexHTML, want) {
			t.Errorf("IndexHTML missing %q", want)
		}
	}
}
