package http

import (
	"net/http"
	"strconv"
	"time"

	"broker/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deviceTokenRequest struct {
	DeviceToken string `json:"device_token"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

type createOrderRequest struct {
	Notes   string `json:"notes"`
	Address string `json:"address"`
}

// uuidParam parses a path parameter as a UUID. On failure the 400 response
// has already been written and the second result is false.
func uuidParam(ctx echo.Context, name string) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		_ = writeError(ctx, http.StatusBadRequest, "invalid "+name)
		return kernel.UUID{}, false
	}
	return id, true
}

// pageParams reads the limit and skip query parameters. Absent parameters
// come back as zero; the query constructors substitute defaults.
func pageParams(ctx echo.Context) (limit, skip int, ok bool) {
	limit, ok = intParam(ctx, "limit")
	if !ok {
		return 0, 0, false
	}
	skip, ok = intParam(ctx, "skip")
	if !ok {
		return 0, 0, false
	}
	return limit, skip, true
}

func intParam(ctx echo.Context, name string) (int, bool) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		_ = writeError(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}

// dateParam reads an optional date query parameter, accepting a plain date
// or a full RFC3339 timestamp.
func dateParam(ctx echo.Context, name string) (*time.Time, bool) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, true
	}
	_ = writeError(ctx, http.StatusBadRequest, "invalid "+name)
	return nil, false
}
