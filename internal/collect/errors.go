package collect

import (
	"errors"

	"zoneminder-cli/internal/client"
)

// Failure classes of a collection cycle. Configuration, authentication and
// transport errors abort the cycle of one target; partial data and parse
// errors are logged and collection goes on without the affected value.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = client.ErrAuthentication
	ErrTransport      = client.ErrTransport
	ErrPartialData    = errors.New("partial data")
	ErrParse          = errors.New("parse error")
)
