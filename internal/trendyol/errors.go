package trendyol

import "errors"

// ErrRequestFailed is returned when the marketplace API responds with a
// non-2xx status. The wrapping error carries the response body detail.
var ErrRequestFailed = errors.New("marketplace request failed")
