package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID reads the authenticated user's id from the context as
// set by the JWT middleware.  JWT numeric claims decode as float64;
// string subjects are parsed as unsigned integers.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), v > 0
	case uint64:
		return v, v > 0
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}
