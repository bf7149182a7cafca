package feed

import "errors"

// ErrStatusNotOK is returned when the feed URL responds with a non-200 status.
var ErrStatusNotOK = errors.New("response status is not OK")

// ErrNoProductList is returned when no list of products can be located
// anywhere in the decoded feed document.
var ErrNoProductList = errors.New("feed contains no product list")
