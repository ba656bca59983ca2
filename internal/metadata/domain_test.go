package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		// Segment after a source-root marker
		{"src/api/handlers/users.ts", "api"},
		{"packages/auth/src/token.ts", "auth"},
		{"organs/chatbot/brain.ts", "chatbot"},
		{"apps/client/main.tsx", "client"},

		// Segment after docs
		{"docs/architecture/overview.md", "architecture"},
		{"docs/tickets/T-1042.md", "tickets"},
		{"docs/index/readme.md", "docs"},
		{"docs/images/diagram.md", "docs"},
		{"docs/overview.md", "docs"},

		// Test markers
		{"tests/e2e/login.spec.ts", "testing"},
		{"__tests__/api.test.ts", "testing"},
		{"evaluations/run1/report.md", "testing"},

		// Common-domain keywords anywhere
		{"server/websocket/gateway.ts", "server"},
		{"some/Railway/notes.md", "railway"},

		// Last plain directory segment
		{"random/deep/thing.ts", "deep"},

		// Fallback
		{"README.md", "core"},
		{"package.json", "core"},
		{"", "core"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainForPath(tt.path))
		})
	}
}

func TestDomainForPath_FileNameNeverNamesDomain(t *testing.T) {
	// The api segment is a file, not a directory, so it does not apply.
	assert.Equal(t, "core", DomainForPath("api.ts"))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.ts"}, splitPath("a/b/c.ts"))
	assert.Equal(t, []string{"a", "b"}, splitPath("./a//b"))
	assert.Empty(t, splitPath(""))
}
