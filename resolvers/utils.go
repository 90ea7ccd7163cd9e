package resolvers

import (
	"io"

	"github.com/audimeta/geodash/geolib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

func orUnknown(name string) string {
	if name == "" {
		return geolib.UnknownName
	}

	return name
}

func orUnknownCode(code string) string {
	if code == "" {
		return geolib.UnknownCountryCode
	}

	return code
}
