package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/service"
)

// errorBody is the JSON shape of every failed response.  Reasons is set
// for invalid requests and failed logins.
type errorBody struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

// respond maps a service error onto a status code and error body.
func respond(c echo.Context, err error) error {
	var re *service.ReasonError
	switch {
	case errors.As(err, &re) && errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: service.ErrUnauthorized.Error(), Reasons: re.Reasons()})
	case errors.As(err, &re):
		return c.JSON(http.StatusBadRequest, errorBody{Error: service.ErrInvalidRequest.Error(), Reasons: re.Reasons()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrDuplicate),
		errors.Is(err, service.ErrInUse),
		errors.Is(err, model.ErrSeatTaken),
		errors.Is(err, model.ErrSoldOut),
		errors.Is(err, model.ErrSessionClosed):
		return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrCapacityExceeded), errors.Is(err, model.ErrSeatOutOfRange):
		return c.JSON(http.StatusBadRequest, errorBody{Error: service.ErrInvalidRequest.Error(), Reasons: []string{err.Error()}})
	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, errorBody{Error: service.ErrInternal.Error()})
}

func badRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Error: service.ErrInvalidRequest.Error(), Reasons: []string{reason}})
}

// bind decodes the JSON body into dst.  It writes a 400 response and
// returns false when the body is malformed.
func bind(c echo.Context, dst interface{}) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, badRequest(c, "invalid request body")
	}
	return true, nil
}

// pathID parses the :id path parameter.  Malformed ids read as not found.
func pathID(c echo.Context) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false, c.JSON(http.StatusNotFound, errorBody{Error: service.ErrNotFound.Error()})
	}
	return id, true, nil
}
