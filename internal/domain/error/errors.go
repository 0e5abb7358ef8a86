package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of an application error. The boundary layer
// matches kinds exhaustively to produce wire-visible responses.
type Kind string

const (
	KindMemberNotFound      Kind = "MemberNotFound"
	KindUserNotFound        Kind = "UserNotFound"
	KindUserNameNotFound    Kind = "UserNameNotFound"
	KindForbidden           Kind = "ForbiddenAction"
	KindInsufficientBalance Kind = "InsufficientBalance"
	KindDuplicate           Kind = "DuplicateEntity"
	KindInvalidCredentials  Kind = "InvalidCredentials"
	KindInvalidToken        Kind = "InvalidToken"
	KindValidation          Kind = "ValidationError"
	KindDatabase            Kind = "DatabaseError"
	KindUnknown             Kind = "Unknown"
)

// AppError is the single error envelope returned by every service method.
// It carries the HTTP status the boundary should answer with and a
// structured context map that becomes the response body.
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind. This lets
// callers match against the sentinel prototypes below with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// LogFields returns a map of fields for structured logging
func (e *AppError) LogFields() map[string]any {
	fields := map[string]any{
		"error_kind": string(e.Kind),
		"status":     e.Status,
		"message":    e.Message,
	}
	for k, v := range e.Context {
		fields[k] = v
	}
	if e.Err != nil {
		fields["cause"] = e.Err.Error()
	}
	return fields
}

// Sentinel prototypes for errors.Is matching. Only the kind is compared.
var (
	ErrMemberNotFound      = &AppError{Kind: KindMemberNotFound, Status: http.StatusNotFound, Message: "member not found"}
	ErrUserNotFound        = &AppError{Kind: KindUserNotFound, Status: http.StatusNotFound, Message: "user not found"}
	ErrUserNameNotFound    = &AppError{Kind: KindUserNameNotFound, Status: http.StatusNotFound, Message: "username not found"}
	ErrForbidden           = &AppError{Kind: KindForbidden, Status: http.StatusForbidden, Message: "action not allowed"}
	ErrInsufficientBalance = &AppError{Kind: KindInsufficientBalance, Status: http.StatusBadRequest, Message: "insufficient balance"}
	ErrDuplicate           = &AppError{Kind: KindDuplicate, Status: http.StatusUnprocessableEntity, Message: "entity already exists"}
	ErrInvalidCredentials  = &AppError{Kind: KindInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"}
	ErrInvalidToken        = &AppError{Kind: KindInvalidToken, Status: http.StatusUnauthorized, Message: "invalid or unsigned token"}
	ErrValidation          = &AppError{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: "validation failed"}
	ErrDatabase            = &AppError{Kind: KindDatabase, Status: http.StatusInternalServerError, Message: "database error"}
)

// NewMemberNotFound creates a member-not-found error for the given ID
func NewMemberNotFound(memberID uint64) *AppError {
	return &AppError{
		Kind:    KindMemberNotFound,
		Status:  http.StatusNotFound,
		Message: "member not found",
		Context: map[string]any{"member_id": memberID},
	}
}

// NewMemberNotFoundByKey creates a member-not-found error for a non-ID lookup
func NewMemberNotFoundByKey(field, value string) *AppError {
	return &AppError{
		Kind:    KindMemberNotFound,
		Status:  http.StatusNotFound,
		Message: "member not found",
		Context: map[string]any{field: value},
	}
}

// NewUserNotFound creates a user-not-found error for the given ID
func NewUserNotFound(userID uint64) *AppError {
	return &AppError{
		Kind:    KindUserNotFound,
		Status:  http.StatusNotFound,
		Message: "user not found",
		Context: map[string]any{"user_id": userID},
	}
}

// NewUserNameNotFound creates a not-found error for a username lookup
func NewUserNameNotFound(username string) *AppError {
	return &AppError{
		Kind:    KindUserNameNotFound,
		Status:  http.StatusNotFound,
		Message: "username not found",
		Context: map[string]any{"username": username},
	}
}

// NewForbidden creates an authorization failure with an explanation
func NewForbidden(message string) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Status:  http.StatusForbidden,
		Message: message,
		Context: map[string]any{"message": message},
	}
}

// NewInsufficientBalance reports a debit that exceeds the current balance
func NewInsufficientBalance(memberID uint64, current, requested string) *AppError {
	return &AppError{
		Kind:    KindInsufficientBalance,
		Status:  http.StatusBadRequest,
		Message: "insufficient balance",
		Context: map[string]any{
			"member_id":        memberID,
			"current_balance":  current,
			"requested_amount": requested,
		},
	}
}

// NewDuplicate reports a unique-constraint violation on create or update
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Kind:    KindDuplicate,
		Status:  http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("%s with this %s already exists", entity, field),
		Context: map[string]any{"entity": entity, field: value},
	}
}

// NewInvalidCredentials reports a failed password check
func NewInvalidCredentials() *AppError {
	return &AppError{
		Kind:    KindInvalidCredentials,
		Status:  http.StatusUnauthorized,
		Message: "invalid credentials",
	}
}

// NewInvalidToken reports missing signing material or a bad token
func NewInvalidToken(message string) *AppError {
	return &AppError{
		Kind:    KindInvalidToken,
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// NewValidation reports a field-level constraint violation
func NewValidation(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusUnprocessableEntity,
		Message: message,
		Context: map[string]any{"field": field, "message": message},
	}
}

// NewDatabase wraps an unexpected store failure. The underlying error text
// is kept for logs but never reaches the wire.
func NewDatabase(err error) *AppError {
	return &AppError{
		Kind:    KindDatabase,
		Status:  http.StatusInternalServerError,
		Message: "database error",
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status for err, defaulting to 500
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// ContextOf returns the structured context for err, or an empty map
func ContextOf(err error) map[string]any {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Context != nil {
		return appErr.Context
	}
	return map[string]any{}
}

// IsNotFound reports whether err is any not-found kind
func IsNotFound(err error) bool {
	switch KindOf(err) {
	case KindMemberNotFound, KindUserNotFound, KindUserNameNotFound:
		return true
	}
	return false
}
