package models

import "errors"

// ErrSMENotFound indicates an SME identifier with no master record.
// Handlers map it to a 404.
var ErrSMENotFound = errors.New("sme not found")
