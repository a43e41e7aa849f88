// Package httpx maps manager results onto echo responses.
package httpx

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"farm/pkg/store/service"
	"farm/pkg/validation"
)

// Fail writes err as {"error": ...} with a status chosen by its kind.
func Fail(c echo.Context, err error) error {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "fields": ve.Problems})
	case errors.Is(err, validation.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

// Mutated answers a create or update. A change that could not be written is
// still a success with "persisted": false, since it lives on in memory.
func Mutated(c echo.Context, status int, rec any, err error) error {
	switch {
	case err == nil:
		return c.JSON(status, echo.Map{"record": rec, "persisted": true})
	case errors.Is(err, service.ErrNotPersisted):
		return c.JSON(status, echo.Map{"record": rec, "persisted": false, "warning": err.Error()})
	}
	return Fail(c, err)
}

// Bind decodes the request body strictly: unknown fields are rejected.
func Bind(c echo.Context, dst any) error {
	return validation.DecodeStrict(c.Request().Body, dst)
}

// ParamID reads the :id path parameter.
func ParamID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		ve := &validation.ValidationError{}
		ve.Add("id", "must be a positive integer")
		return 0, ve
	}
	return id, nil
}

// QueryInt reads an optional integer query parameter; def when absent.
func QueryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		ve := &validation.ValidationError{}
		ve.Add(name, "must be an integer")
		return 0, ve
	}
	return n, nil
}
