package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{file: "docs/cli/mpc.md", want: "---\ntitle: \"mpc\"\n---\n\n"},
		{file: "docs/cli/mpc_favorites_mark.md", want: "---\ntitle: \"mpc favorites mark\"\n---\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, frontMatter(tt.file))
		})
	}
}

func TestCountCommands(t *testing.T) {
	t.Parallel()

	run := func(*cobra.Command, []string) {}
	root := &cobra.Command{Use: "mpc"}
	favorites := &cobra.Command{Use: "favorites"}
	favorites.AddCommand(
		&cobra.Command{Use: "list", Run: run},
		&cobra.Command{Use: "mark", Run: run},
	)
	root.AddCommand(
		favorites,
		&cobra.Command{Use: "node", Run: run},
		&cobra.Command{Use: "debug", Run: run, Hidden: true},
	)

	assert.Equal(t, 5, countCommands(root))
}
