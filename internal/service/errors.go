package service

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/iliyamo/cinema-control/internal/model"
)

// Errors returned by every service.  Repository failures never leak; they
// are logged and reported as ErrInternal.
var (
	ErrDuplicate        = errors.New("duplicate record")
	ErrNotFound         = errors.New("record not found")
	ErrInternal         = errors.New("internal server error")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInUse            = errors.New("record in use")
	ErrCapacityExceeded = errors.New("max tickets exceed room capacity")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ReasonError is a failure of kind ErrInvalidRequest or ErrUnauthorized
// that carries the individual reasons behind it.
type ReasonError struct {
	kind error
	errs *multierror.Error
}

// Error joins the reasons after the kind.
func (e *ReasonError) Error() string {
	return e.kind.Error() + ": " + strings.Join(e.Reasons(), "; ")
}

// Is matches the kind sentinel so errors.Is(err, ErrInvalidRequest) works.
func (e *ReasonError) Is(target error) bool { return target == e.kind }

// Reasons returns each reason message in the order it was added.
func (e *ReasonError) Reasons() []string {
	if e.errs == nil {
		return nil
	}
	out := make([]string, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		out = append(out, err.Error())
	}
	return out
}

// withReasons wraps merr into a ReasonError of the given kind.  It returns
// nil when merr holds no errors.
func withReasons(kind error, merr *multierror.Error) error {
	if merr.ErrorOrNil() == nil {
		return nil
	}
	return &ReasonError{kind: kind, errs: merr}
}

func invalidRequest(reasons ...string) error {
	return withReasons(ErrInvalidRequest, appendReasons(nil, reasons...))
}

func unauthorized(reasons ...string) error {
	return withReasons(ErrUnauthorized, appendReasons(nil, reasons...))
}

func appendReasons(merr *multierror.Error, reasons ...string) *multierror.Error {
	for _, r := range reasons {
		merr = multierror.Append(merr, errors.New(r))
	}
	return merr
}

// passthrough lists the errors a unit of work returns unchanged.
var passthrough = []error{
	ErrDuplicate, ErrNotFound, ErrInvalidRequest, ErrInUse, ErrCapacityExceeded, ErrUnauthorized,
	model.ErrSessionClosed, model.ErrSoldOut, model.ErrSeatOutOfRange, model.ErrSeatTaken,
}

func isDomainError(err error) bool {
	for _, target := range passthrough {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
