package filestore

import (
	"errors"
	"fmt"
)

// Failure classes surfaced by Client operations. Status buckets are reached
// through StatusError, so callers match them with errors.Is and recover the
// numeric code with errors.As.
var (
	ErrInvalidRequest    = errors.New("invalid request url")
	ErrFileRead          = errors.New("file read failed")
	ErrBadServerResponse = errors.New("bad server response")
	ErrParse             = errors.New("parse server response")
	ErrRedirection       = errors.New("redirection status")
	ErrClient            = errors.New("client error status")
	ErrServer            = errors.New("server error status")
	ErrUnknownStatus     = errors.New("unknown status")
)

// StatusError reports a non-2xx HTTP status. Unwrap yields the bucket
// sentinel matching the code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v %d", e.bucket(), e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.bucket()
}

func (e *StatusError) bucket() error {
	switch {
	case e.Code >= 300 && e.Code < 400:
		return ErrRedirection
	case e.Code >= 400 && e.Code < 500:
		return ErrClient
	case e.Code >= 500 && e.Code < 600:
		return ErrServer
	default:
		return ErrUnknownStatus
	}
}

// classifyStatus maps an HTTP status code to a failure; nil means 2xx.
func classifyStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{Code: code}
}
