// Package httperr maps service-layer errors onto the HTTP surface.
package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinicore/internal/platform/db"
	"github.com/clinicore/clinicore/internal/platform/validate"
)

// Map converts a service error into an echo HTTPError. Missing rows become
// 404 with the caller's message, unique-constraint violations 409, and
// validation failures 400 with the service's message. Anything else is an
// internal failure: the response body carries no detail, and the cause
// travels in the HTTPError's Internal field so the request logger records it.
func Map(err error, notFound string) error {
	switch {
	case db.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case db.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, "conflict")
	case validate.Invalid(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}
