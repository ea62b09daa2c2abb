package http

import (
	"net/http"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"

	"github.com/labstack/echo/v4"
)

// Headers set by the authentication gateway in front of the service.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// actorFrom reads the caller identity. A missing or malformed identity is a 401.
func actorFrom(c echo.Context) (quote.Actor, error) {
	rawID := c.Request().Header.Get(HeaderActorID)
	rawRole := c.Request().Header.Get(HeaderActorRole)
	if rawID == "" || rawRole == "" {
		return quote.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing actor identity")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return quote.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "malformed actor id")
	}
	role, err := quote.ParseActorKind(rawRole)
	if err != nil {
		return quote.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown actor role")
	}
	actor, err := quote.NewActor(id, role)
	if err != nil {
		return quote.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid actor")
	}
	return actor, nil
}

func requestIDParam(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}
