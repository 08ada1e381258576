package usecase

import "errors"

// Kind classifies an Error so the HTTP boundary can pick a status and decide
// how much detail reaches the client.
type Kind int

const (
	KindUnhandled Kind = iota
	KindValidation
	KindNotFound
	KindStoreWrite
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStoreWrite:
		return "store_write"
	default:
		return "unhandled"
	}
}

// Client facing messages.
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidJSON   = "Invalid JSON body"
	MsgLeadNotFound  = "Lead not found"
	MsgCreateFailed  = "Failed to create lead"
)

// Error is the tagged error returned by the lead use cases. Message is safe to
// serialize. Err holds the underlying failure and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  []ValidationError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, fields ...ValidationError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Message: MsgLeadNotFound}
}

func NewStoreWriteError(err error) *Error {
	return &Error{Kind: KindStoreWrite, Message: MsgCreateFailed, Err: err}
}

// KindOf returns the Kind of err, KindUnhandled for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnhandled
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}
