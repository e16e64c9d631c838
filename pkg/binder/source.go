package binder

import (
	"fmt"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Values maps field keys to their raw string values.
type Values map[string][]string

// Get returns the first value for key, or "".
func (v Values) Get(key string) string {
	if vs := v[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Set replaces the values for key.
func (v Values) Set(key string, values ...string) {
	v[key] = values
}

// Merge combines sources into a new Values. A key present in a later source
// replaces the same key from earlier ones.
func Merge(sources ...Values) Values {
	out := make(Values)
	for _, src := range sources {
		maps.Copy(out, src)
	}
	return out
}

// FormValues extracts body values from application/x-www-form-urlencoded
// and multipart/form-data requests. Uploaded files are ignored.
func FormValues(r *http.Request) (Values, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	// Extract media type without parameters
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return Values(r.PostForm), nil

	case strings.HasPrefix(mediaType, "multipart/form-data"):
		_, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed content type with boundary", ErrInvalidForm)
		}

		boundary, ok := params["boundary"]
		if !ok || boundary == "" {
			return nil, fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
		}
		if !validateBoundary(boundary) {
			return nil, fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
		}

		// Note: Request size limits should be handled at server/middleware level
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		if r.MultipartForm == nil {
			return Values{}, nil
		}
		return Values(r.MultipartForm.Value), nil
	}

	return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
}

// validateBoundary checks a multipart boundary against RFC 2046: 1 to 70
// characters from the bchars set, not ending in a space.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// QueryValues extracts URL query parameters.
func QueryValues(r *http.Request) (Values, error) {
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return Values(values), nil
}

// PathExtractor returns the value of a named path parameter, or "" when the
// route has none. With chi:
//
//	binder.PathValues(r, func(r *http.Request, name string) string {
//		return chi.URLParam(r, name)
//	}, "id", "slug")
type PathExtractor func(r *http.Request, name string) string

// PathValues extracts the named path parameters through extractor. Empty
// parameters are omitted so they leave their fields untouched.
func PathValues(r *http.Request, extractor PathExtractor, names ...string) (Values, error) {
	if extractor == nil {
		return nil, fmt.Errorf("%w: nil extractor", ErrInvalidPath)
	}
	out := make(Values, len(names))
	for _, name := range names {
		if v := extractor(r, name); v != "" {
			out[name] = []string{v}
		}
	}
	return out, nil
}
