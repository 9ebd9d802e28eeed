package httpx

import (
	"mime"
	"net/http"
	"strings"
)

const (
	DefaultAPIVersion       = "1.0"
	supportedVersionsHeader = "api-supported-versions"
	versionParam            = "api-version"
)

// APIVersionMiddleware reads the api-version media type parameter from the
// Accept header. Requests that omit it get the default version; requests
// asking for a version not in supported are rejected with 400.
func APIVersionMiddleware(supported ...string) Middleware {
	if len(supported) == 0 {
		supported = []string{DefaultAPIVersion}
	}
	known := make(map[string]bool, len(supported))
	for _, v := range supported {
		known[v] = true
	}
	advertised := strings.Join(supported, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(supportedVersionsHeader, advertised)
			if v := requestedVersion(r.Header.Values("Accept")); v != "" && !known[v] {
				JSONError(w, r, http.StatusBadRequest, CodeBadAPIVersion,
					"The HTTP resource does not support the API version '"+v+"'", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestedVersion(accepts []string) string {
	for _, header := range accepts {
		for _, part := range strings.Split(header, ",") {
			_, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			if v, ok := params[versionParam]; ok {
				return v
			}
		}
	}
	return ""
}
