package web

import (
	"net/http"
	"strings"

	"konvyshop/web/static"

	"github.com/rohanthewiz/rweb"
)

const (
	faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#7c5cff"/><text x="250" y="320" font-family="Arial,sans-serif" font-weight="900" font-size="220" fill="white" text-anchor="middle">KV</text></svg>`

	// Requests carrying the current ?v= never change
	immutableCache = "public, max-age=31536000, immutable"
	// Everything else revalidates against the ETag
	revalidateCache = "public, no-cache"
)

// SetupStaticFiles mounts the embedded assets and the favicon.
func SetupStaticFiles(s *rweb.Server) {
	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get(static.Prefix+"*", serveAsset)
}

func serveAsset(c rweb.Context) error {
	asset, ok := static.Lookup(strings.TrimPrefix(c.Request().Path(), static.Prefix))
	if !ok {
		c.SetStatus(http.StatusNotFound)
		return c.WriteText("Not found")
	}

	c.Response().SetHeader("ETag", asset.ETag())
	if c.Request().QueryParam("v") == asset.Version {
		c.Response().SetHeader("Cache-Control", immutableCache)
	} else {
		c.Response().SetHeader("Cache-Control", revalidateCache)
	}

	if c.Request().Header("If-None-Match") == asset.ETag() {
		c.SetStatus(http.StatusNotModified)
		return nil
	}

	c.Response().SetHeader("Content-Type", asset.ContentType)
	return c.Bytes(asset.Body)
}
