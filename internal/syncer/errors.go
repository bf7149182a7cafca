package syncer

import "errors"

// ErrNotDue is returned when a non-forced sync arrives before the
// supplier's auto-update interval has elapsed.
var ErrNotDue = errors.New("sync not due yet")

// ErrSupplierInactive is returned when a sync targets a deactivated
// supplier.
var ErrSupplierInactive = errors.New("supplier is inactive")
