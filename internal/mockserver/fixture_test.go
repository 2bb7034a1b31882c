package mockserver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/mockserver"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	f, err := mockserver.LoadFixture(filepath.Join("testdata", "fixture.yaml"))
	require.NoError(t, err)

	require.Len(t, f.Markets, 1)
	assert.Equal(t, "editor", f.Markets[0].Categories[0].Slug)
	require.Len(t, f.Nodes, 2)
	assert.Equal(t, []domain.IU{{ID: "net.sourceforge.vrapper", Selected: true}}, f.Nodes[0].IUs)
	assert.Empty(t, f.Nodes[1].IUs)
	assert.Equal(t, []string{"8", "7"}, f.Favorites["bob"])
	assert.Equal(t, []string{"static-token"}, f.Tokens)
}

func TestLoadFixture_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed",
			yaml:    "markets: [",
			wantErr: "parsing fixture",
		},
		{
			name:    "node without slug",
			yaml:    "nodes:\n  - id: \"1\"\n    name: One\n",
			wantErr: `node "One" needs an id and a slug`,
		},
		{
			name:    "duplicate node",
			yaml:    "nodes:\n  - {id: \"1\", slug: a}\n  - {id: \"1\", slug: b}\n",
			wantErr: `duplicate node id "1"`,
		},
		{
			name:    "unknown category",
			yaml:    "nodes:\n  - {id: \"1\", slug: a, category: \"9\"}\n",
			wantErr: `unknown category "9"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "fixture.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := mockserver.LoadFixture(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
