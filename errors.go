package datasystem

import (
	"errors"
)

var (
	//Returned for any token that is missing, malformed, unknown, locked or
	//lacking the required flag. The sub-reason is never exposed to the caller.
	ErrUnauthorized = errors.New("unauthorized request")

	//Returned when an authorized, well-formed read matches zero rows
	ErrNoContent = errors.New("no matching readings")
)

//Rejection messages for invalid submissions, in the order the checks run
const (
	RejectNoDevice    = "no device-id was provided"
	RejectNoTimestamp = "no timestamp was provided"
)

//Rejection is a validation failure on ingestion. The reason is machine-readable
//and stable.
type Rejection struct {
	Reason string
}

func (r Rejection) Error() string {
	return r.Reason
}

func IsRejection(err error) bool {
	var r Rejection
	return errors.As(err, &r)
}
