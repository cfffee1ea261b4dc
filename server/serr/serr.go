// Package serr holds common error objects used across the pattern server.
// Notably, it contains the Error type, which can be created with one or more
// 'cause' errors. Calling errors.Is() on this Error type with an argument
// consisting of any of the errors it has as a cause will return true.
//
// This package also holds several global error constants created via
// errors.New().
package serr

import "errors"

var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrAlreadyExists = errors.New("resource with same identifying information already exists")
	ErrDB            = errors.New("an error occured with the DB")
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
)

// Error is a typed error returned by functions in the pattern server as
// their error value. It contains both a message explaining what happened as
// well as zero or more error values it considers to be its causes. Error is
// compatible with the use of errors.Is() - calling errors.Is on some Error
// value err along with any value of error it holds as one of its causes
// will return true.
//
// Error should not be used directly; call New to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error. If a message was defined
// for it when created, that message is returned, concatenated with the
// result of calling Error() on its first cause if one is defined. If no
// message or an empty message was defined for it when created, but there is
// at least one cause defined for it, the result of calling Error() on the
// first cause is returned. If no message is defined and no causes are
// defined, returns the empty string.
func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}

	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Is returns whether Error either Is itself the given target error, or one
// of its causes is.
//
// This function is for interaction with the errors API.
func (e Error) Is(target error) bool {
	for i := range e.cause {
		if errors.Is(e.cause[i], target) {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message and causes. If the message
// is empty, the first cause's message stands in for it.
func New(msg string, causes ...error) Error {
	return Error{
		msg:   msg,
		cause: causes,
	}
}
