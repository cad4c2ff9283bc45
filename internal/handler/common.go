package handler // handler implements the HTTP layer over the reservation core

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID extracts a positive numeric path parameter. A zero or
// malformed value is reported as not ok.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parsePage reads the skip/limit query parameters used by the list
// endpoints, falling back to 0/100.
func parsePage(c echo.Context) (skip, limit int) {
	skip = 0
	limit = 100
	if v := c.QueryParam("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}
