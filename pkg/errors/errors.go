package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code classifies a client-side failure for notification and control flow.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeBusiness     Code = "BUSINESS_ERROR"
	CodeNetwork      Code = "NETWORK_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata drives how an error of a given code is surfaced to the user.
type Metadata struct {
	// FallbackMessage is shown when the error carries no message of its own.
	FallbackMessage string
	// SurfaceVerbatim allows the carried message (typically the server's) to be
	// shown to the user unmodified.
	SurfaceVerbatim bool
	// ClearsSession indicates the session must be destroyed when this code is seen.
	ClearsSession bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		FallbackMessage: "please check your input",
		SurfaceVerbatim: true,
	},
	CodeUnauthorized: {
		FallbackMessage: "please login to continue",
		SurfaceVerbatim: false,
		ClearsSession:   true,
	},
	CodeForbidden: {
		FallbackMessage: "access denied",
		SurfaceVerbatim: false,
	},
	CodeNotFound: {
		FallbackMessage: "not found",
		SurfaceVerbatim: true,
	},
	CodeBusiness: {
		FallbackMessage: "request could not be completed",
		SurfaceVerbatim: true,
	},
	CodeNetwork: {
		FallbackMessage: "something went wrong, please try again",
		SurfaceVerbatim: false,
	},
	CodeDependency: {
		FallbackMessage: "service unavailable",
		SurfaceVerbatim: false,
	},
}

// MetadataFor resolves the metadata for a code, defaulting to network handling.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeNetwork]
}

// Error is the typed error carried across the client.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeNetwork
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from an error chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// UserMessage resolves the notification text for any error following the
// surface policy: typed messages show verbatim only when their code allows it.
func UserMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeNetwork).FallbackMessage
	}
	meta := MetadataFor(typed.Code())
	if meta.SurfaceVerbatim && typed.Message() != "" {
		return typed.Message()
	}
	return meta.FallbackMessage
}

// IsUnauthorized reports whether the error chain carries a 401-class failure.
func IsUnauthorized(err error) bool {
	typed := As(err)
	return typed != nil && typed.Code() == CodeUnauthorized
}
