package repositories

import "errors"

// ErrDuplicateKey is returned when an insert trips a unique constraint, e.g.
// a second pending permission request racing past the prior-existence check.
// GORM's translated gorm.ErrDuplicatedKey is normalized to this so services
// and tests never depend on driver error types.
var ErrDuplicateKey = errors.New("duplicate key")
