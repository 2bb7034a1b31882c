package favorites_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
)

func TestUserFromURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "absolute", uri: "http://marketplace.example/user/alice/favorites", want: "alice"},
		{name: "relative", uri: "user/bob/favorites", want: "bob"},
		{name: "nested root", uri: "https://m.example/api/v1/user/carol/favorites/", want: "carol"},
		{name: "escaped name", uri: "http://m/user/j%20doe/favorites", want: "j doe"},
		{name: "api suffix", uri: "http://m/user/dave/favorites/api/p", want: "dave"},
		{name: "not a list", uri: "http://m/content/mylyn", wantErr: true},
		{name: "empty user", uri: "http://m/user//favorites", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := favorites.UserFromURI(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, catalog.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user/alice/favorites", favorites.ListPath("alice"))
	assert.Equal(t, "user/j%20doe/favorites", favorites.ListPath("j doe"))
}
