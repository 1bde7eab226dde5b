package interfaces

import "errors"

// ErrStorageNotInitialized is returned by store accessors while the storage
// backend connection has not yet completed. Startup is asynchronous, so
// early requests must surface this instead of hanging.
var ErrStorageNotInitialized = errors.New("storage not initialized")

// ErrValidation wraps document validation failures so transport layers can
// map them to a client error instead of a server fault.
var ErrValidation = errors.New("validation failed")
