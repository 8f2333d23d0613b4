package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when an operation needs a known, logged-in user.
	ErrUnauthorized = errors.New("login required")
	// ErrForbidden is returned when the user lacks the role or ownership required.
	ErrForbidden = errors.New("permission denied")
	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrCategoryNotAllowed is returned when a post is created in a category
	// that is not open for member posts.
	ErrCategoryNotAllowed = errors.New("category not allowed")
)

// MessageError narrows a sentinel with the message shown to the user.
// errors.Is still matches the wrapped sentinel.
type MessageError struct {
	Err error
	Msg string
}

func (e *MessageError) Error() string {
	return e.Err.Error() + ": " + e.Msg
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

var (
	// ErrUpdateForbidden is returned when a non-owner edits a post.
	ErrUpdateForbidden = &MessageError{Err: ErrForbidden, Msg: "수정 권한이 없습니다."}
	// ErrDeleteForbidden is returned when a non-owner deletes a post.
	ErrDeleteForbidden = &MessageError{Err: ErrForbidden, Msg: "삭제 권한이 없습니다."}
	// ErrAnswerForbidden is returned when anyone but an admin answers.
	ErrAnswerForbidden = &MessageError{Err: ErrForbidden, Msg: "관리자만 답변이 가능합니다."}
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Msg:  e.Message,
		Code: e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Messages are shown to
// end users by the web client as-is.
func MapErrorToHTTP(err error) *HTTPError {
	httpErr := mapSentinel(err)
	var msgErr *MessageError
	if httpErr.StatusCode != http.StatusInternalServerError && errors.As(err, &msgErr) {
		httpErr.Message = msgErr.Msg
	}
	return httpErr
}

func mapSentinel(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "로그인이 필요합니다.", "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "권한이 없습니다.", "FORBIDDEN")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, "게시글을 찾을 수 없습니다.", "POST_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotAllowed):
		return NewHTTPError(http.StatusBadRequest, "허용되지 않은 카테고리입니다.", "CATEGORY_NOT_ALLOWED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
