package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when a sync can't be started because a previous run
// for the same supplier is not finished yet.
var ErrAlreadyRunning = errors.New("sync already running for this supplier")
