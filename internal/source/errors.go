package source

import (
	"errors"
	"fmt"
)

// ErrAuthorization marks token-exchange failures: a non-2xx response from the
// token endpoint or a payload without an access token. An authorization
// failure aborts the fetch before the data request is attempted.
var ErrAuthorization = errors.New("authorization failed")

// FetchError is a non-2xx response from the data endpoint.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: status %d", e.StatusCode)
}

// IsAuthorization reports whether err stems from the token exchange.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrAuthorization)
}
