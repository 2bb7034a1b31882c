package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

func TestPrintNodesTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printNodesTable(&buf, []domain.Node{
		{
			ID: "1139", Name: "Mylyn", URL: "http://m/content/mylyn",
			IUs:       &domain.IUs{Elements: []domain.IU{{ID: "org.mylyn"}}},
			Favorited: domain.FavoriteYes,
		},
		{ID: "1142", Name: strings.Repeat("x", 50), URL: "http://m/content/docs"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "INSTALLABLE", "FAVORITE", "URL"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1139", "Mylyn", "yes", "yes", "http://m/content/mylyn"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], strings.Repeat("x", 37)+"...")
	assert.Contains(t, lines[2], " no ")
	assert.Contains(t, lines[2], " - ")
}

func TestPrintSearchResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  domain.SearchResult
		want string
	}{
		{
			name: "empty",
			res:  domain.SearchResult{},
			want: "No nodes found.",
		},
		{
			name: "partial page",
			res:  domain.SearchResult{MatchCount: 31, Nodes: []domain.Node{{ID: "1"}}},
			want: "Showing 1 of 31 matches.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printSearchResult(&buf, tt.res))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintNodeDetail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printNodeDetail(&buf, &domain.Node{
		ID:        "1139",
		Name:      "Mylyn",
		UpdateURL: "http://download.example/mylyn",
		IUs: &domain.IUs{Elements: []domain.IU{
			{ID: "org.mylyn", Selected: true},
			{ID: "org.mylyn.extras", Optional: true},
		}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Update Site:  http://download.example/mylyn")
	assert.Contains(t, out, "org.mylyn (selected)")
	assert.Contains(t, out, "org.mylyn.extras (optional)")
	assert.Contains(t, out, "Favorite:     -")
}

func TestPrintNews(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printNews(&buf, nil))
	assert.Contains(t, buf.String(), "no news feed")

	buf.Reset()
	require.NoError(t, printNews(&buf, &domain.News{
		ShortTitle: "News",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}))
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05")
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.Severity
		wantErr bool
	}{
		{in: "ok", want: domain.SeverityOK},
		{in: "INFO", want: domain.SeverityInfo},
		{in: "warn", want: domain.SeverityWarning},
		{in: "error", want: domain.SeverityError},
		{in: "cancel", want: domain.SeverityCancel},
		{in: "fatal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNodeQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.Node{ID: "1139"}, nodeQuery("1139"))
	assert.Equal(t, domain.Node{URL: "http://m/content/mylyn"}, nodeQuery("http://m/content/mylyn"))
	assert.Equal(t, domain.Category{URL: "https://m/category/scm"}, categoryQuery("https://m/category/scm"))
}
