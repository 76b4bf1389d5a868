// Package launcherr defines the closed error taxonomy used throughout the
// installer. Every error that crosses a package boundary is wrapped into one
// of these kinds so callers can branch on Kind() instead of string-matching.
package launcherr

import "fmt"

// Kind is a closed set of error categories.
type Kind string

const (
	KindOS          Kind = "os"
	KindENV         Kind = "env"
	KindHTTP        Kind = "http"
	KindParseJSON   Kind = "parse_json"
	KindZip         Kind = "zip"
	KindNotFound    Kind = "not_found"
	KindUnsupported Kind = "unsupported"
	KindGeneral     Kind = "general"
)

// Error is the concrete error type carrying a Kind, a human-readable
// message and an optional wrapped cause.
type Error struct {
	K   Kind
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Kind returns the error's taxonomy tag.
func (e *Error) Kind() Kind { return e.K }

func OS(msg string, cause error) error {
	return &Error{K: KindOS, Msg: msg, Err: cause}
}

func Env(msg string, cause error) error {
	return &Error{K: KindENV, Msg: msg, Err: cause}
}

func HTTP(msg string, cause error) error {
	return &Error{K: KindHTTP, Msg: msg, Err: cause}
}

func ParseJSON(msg string, cause error) error {
	return &Error{K: KindParseJSON, Msg: msg, Err: cause}
}

func Zip(msg string, cause error) error {
	return &Error{K: KindZip, Msg: msg, Err: cause}
}

func NotFound(id string) error {
	return &Error{K: KindNotFound, Msg: fmt.Sprintf("not found: %s", id)}
}

func Unsupported(x string) error {
	return &Error{K: KindUnsupported, Msg: fmt.Sprintf("unsupported: %s", x)}
}

func General(msg string) error {
	return &Error{K: KindGeneral, Msg: msg}
}

// Of extracts the Kind of an error if it is (or wraps) a *Error, and
// reports whether one was found.
func Of(err error) (Kind, bool) {
	var e *Error
	for err != nil {
		if ee, ok := err.(*Error); ok {
			e = ee
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return "", false
	}
	return e.K, true
}
