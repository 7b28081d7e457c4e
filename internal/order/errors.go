package order

import (
	"errors"
	"fmt"
)

// Kind classifies a failed order operation. The caller-visible remedy
// differs per kind: fix the request, retry later, or report a server fault.
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindStorage             Kind = "storage_error"
)

// Entities an error can be parameterized by.
const (
	EntityUser    = "user"
	EntityProduct = "product"
	EntityOrder   = "order"
)

// Error is the classified failure returned by the orchestrator. Entity is
// set for kinds that are parameterized by which collaborator was involved.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func invalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func notFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: entity + " not found"}
}

func unavailable(entity string, cause error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Entity:  entity,
		Message: entity + " service unavailable",
		cause:   cause,
	}
}

func storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "failed to persist order", cause: cause}
}

// AsError unwraps err into a classified *Error if one is present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
