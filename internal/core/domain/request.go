package domain

import (
	"net/http"
	"net/url"
)

// RequestOptions describes one backend call besides its path.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Query parameters; entries with empty values are dropped.
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
}

// MethodOrDefault returns the HTTP method, falling back to GET.
func (o RequestOptions) MethodOrDefault() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// CleanQuery returns a copy of q without empty values or keys.
func CleanQuery(q url.Values) url.Values {
	out := url.Values{}
	for key, values := range q {
		if key == "" {
			continue
		}
		for _, v := range values {
			if v != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}
