package workflow

import "errors"

// ErrMissingInput is returned when the upload or the JSON payload is absent
// from a submission.
var ErrMissingInput = errors.New("missing required input")

// ErrInvalidJSON is returned when the submission's JSON payload fails to
// parse.
var ErrInvalidJSON = errors.New("invalid json payload")

// ErrValidation wraps malformed request input, including extraction
// failures.
var ErrValidation = errors.New("validation failed")

// ErrStillProcessing signals that the requested record is not ready yet.
// It is a pending signal for the caller to retry, not a hard failure.
var ErrStillProcessing = errors.New("still processing")
