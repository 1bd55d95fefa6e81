// Package static embeds the storefront's stylesheets, scripts and images and
// versions each one by a hash of its content.
package static

import (
	"embed"
	"io/fs"
	"path"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rohanthewiz/logger"
)

// Prefix is where the assets are mounted.
const Prefix = "/static/"

//go:embed css js placeholder.svg
var files embed.FS

// Asset is one embedded file ready to serve.
type Asset struct {
	Path        string
	ContentType string
	Version     string
	Body        []byte
}

// ETag is the quoted content version.
func (a Asset) ETag() string {
	return `"` + a.Version + `"`
}

var assets = load()

func load() map[string]Asset {
	out := make(map[string]Asset)
	err := fs.WalkDir(files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		body, err := files.ReadFile(p)
		if err != nil {
			return err
		}
		out[p] = Asset{
			Path:        p,
			ContentType: contentType(p),
			Version:     strconv.FormatUint(xxhash.Sum64(body), 36),
			Body:        body,
		}
		return nil
	})
	if err != nil {
		logger.LogErr(err, "failed to read embedded assets")
	}
	return out
}

// Lookup returns the asset at p, relative to Prefix.
func Lookup(p string) (Asset, bool) {
	a, ok := assets[p]
	return a, ok
}

// URL is the cache-busting address of the asset at p. Unknown paths get
// the bare address.
func URL(p string) string {
	a, ok := assets[p]
	if !ok {
		return Prefix + p
	}
	return Prefix + p + "?v=" + a.Version
}

func contentType(p string) string {
	switch path.Ext(p) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
