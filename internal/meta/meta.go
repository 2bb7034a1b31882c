// Package meta supplies the request meta-parameters (client, platform,
// locale, runtime) that are attached to every marketplace request.
package meta

import (
	"maps"
	"net/url"
	"os"
	"runtime"
	"slices"
	"strings"
)

// Parameter names understood by the marketplace.
const (
	ParamClient          = "client"
	ParamClientVersion   = "client.version"
	ParamOS              = "os"
	ParamWS              = "ws"
	ParamNL              = "nl"
	ParamRuntimeVersion  = "runtime.version"
	ParamPlatformVersion = "platform.version"
	ParamProduct         = "product"
	ParamProductVersion  = "product.version"
)

// DefaultClient identifies this client when no other name is configured.
const DefaultClient = "org.eclipse.epp.mpc.go"

// Provider returns the meta-parameters to attach to a request.
type Provider interface {
	Parameters() map[string]string
}

// Static is a fixed set of parameters.
type Static map[string]string

// Parameters implements Provider.
func (s Static) Parameters() map[string]string {
	return s
}

// Default returns parameters describing this process: client name and
// version plus os, windowing system, locale and Go runtime version.
func Default(client, version string) Static {
	if client == "" {
		client = DefaultClient
	}
	p := Static{
		ParamClient:         client,
		ParamOS:             platformOS(runtime.GOOS),
		ParamWS:             windowSystem(runtime.GOOS),
		ParamRuntimeVersion: runtime.Version(),
	}
	if version != "" {
		p[ParamClientVersion] = version
	}
	if nl := locale(); nl != "" {
		p[ParamNL] = nl
	}
	return p
}

// Merge returns a Static holding base overlaid with extra. Empty values in
// extra remove the key.
func Merge(base Provider, extra map[string]string) Static {
	out := Static{}
	if base != nil {
		maps.Copy(out, base.Parameters())
	}
	for k, v := range extra {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Append adds the provider's parameters to rawURL as query parameters, in
// key order. The existing query string is left byte-for-byte intact so
// pre-encoded filters survive.
func Append(rawURL string, p Provider) string {
	if p == nil {
		return rawURL
	}
	params := p.Parameters()
	if len(params) == 0 {
		return rawURL
	}

	var b strings.Builder
	b.WriteString(rawURL)
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	for _, k := range slices.Sorted(maps.Keys(params)) {
		if k == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
		sep = "&"
	}
	return b.String()
}

// Form returns the provider's parameters as form values.
func Form(p Provider) url.Values {
	form := url.Values{}
	if p == nil {
		return form
	}
	for k, v := range p.Parameters() {
		if k != "" {
			form.Set(k, v)
		}
	}
	return form
}

func platformOS(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	case "darwin":
		return "macosx"
	default:
		return goos
	}
}

func windowSystem(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	case "darwin":
		return "cocoa"
	case "linux", "freebsd", "openbsd", "netbsd", "solaris":
		return "gtk"
	default:
		return ""
	}
}

// locale derives an Eclipse-style locale ("en_US") from the POSIX
// environment.
func locale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return v
	}
	return ""
}
