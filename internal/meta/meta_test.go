package meta

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppend(t *testing.T) {
	t.Parallel()

	p := Static{ParamClient: "mpc", ParamOS: "linux", ParamNL: "de_DE"}

	tests := []struct {
		name string
		url  string
		p    Provider
		want string
	}{
		{
			name: "no query",
			url:  "featured/api/p",
			p:    p,
			want: "featured/api/p?client=mpc&nl=de_DE&os=linux",
		},
		{
			name: "existing filters kept verbatim",
			url:  "api/p/search/apachesolr_search/WikiText?filters=tid:38%20tid:31",
			p:    Static{ParamClient: "mpc"},
			want: "api/p/search/apachesolr_search/WikiText?filters=tid:38%20tid:31&client=mpc",
		},
		{
			name: "values are escaped",
			url:  "recent/api/p",
			p:    Static{ParamProduct: "org.eclipse.sdk ide"},
			want: "recent/api/p?product=org.eclipse.sdk+ide",
		},
		{name: "nil provider", url: "recent/api/p", p: nil, want: "recent/api/p"},
		{name: "empty provider", url: "recent/api/p", p: Static{}, want: "recent/api/p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Append(tt.url, tt.p))
		})
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")

	p := Default("", "1.2.3")

	assert.Equal(t, DefaultClient, p[ParamClient])
	assert.Equal(t, "1.2.3", p[ParamClientVersion])
	assert.Equal(t, runtime.Version(), p[ParamRuntimeVersion])
	assert.Equal(t, "en_US", p[ParamNL])
	assert.NotEmpty(t, p[ParamOS])
}

func TestDefault_NoVersionNoLocale(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	p := Default("custom", "")

	assert.Equal(t, "custom", p[ParamClient])
	assert.NotContains(t, p, ParamClientVersion)
	assert.NotContains(t, p, ParamNL)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := Static{ParamClient: "mpc", ParamOS: "linux"}
	got := Merge(base, map[string]string{ParamProduct: "epp.package.java", ParamOS: ""})

	assert.Equal(t, Static{ParamClient: "mpc", ParamProduct: "epp.package.java"}, got)
	assert.Equal(t, "linux", base[ParamOS], "base must not be modified")
}

func TestForm(t *testing.T) {
	t.Parallel()

	form := Form(Static{ParamClient: "mpc", "": "ignored"})
	assert.Equal(t, "mpc", form.Get(ParamClient))
	assert.Len(t, form, 1)
	assert.Empty(t, Form(nil))
}

func TestPlatformNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "win32", platformOS("windows"))
	assert.Equal(t, "macosx", platformOS("darwin"))
	assert.Equal(t, "linux", platformOS("linux"))
	assert.Equal(t, "cocoa", windowSystem("darwin"))
	assert.Equal(t, "gtk", windowSystem("linux"))
	assert.Empty(t, windowSystem("js"))
}
