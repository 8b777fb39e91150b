package location

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// Home is the fragment reported for the root path without a fragment.
const Home = "/"

// Fragment returns the routable part of href: the text after "#!" or "#".
// An href whose path is "/" and that carries no fragment yields Home; any
// other href without a fragment yields "".
func Fragment(href string) string {
	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)

	if err := uri.Parse(nil, []byte(href)); err != nil {
		return ""
	}

	hash := string(uri.Hash())
	if hash == "" {
		if string(uri.Path()) == "/" {
			return Home
		}
		return ""
	}

	return trimHash(hash)
}

// trimHash strips the hashbang marker. A lone "!" is kept.
func trimHash(hash string) string {
	if rest, ok := strings.CutPrefix(hash, "!"); ok {
		if i := strings.Index(rest, "#!"); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return rest
		}
	}

	if i := strings.IndexByte(hash, '#'); i >= 0 {
		hash = hash[:i]
	}
	return hash
}
