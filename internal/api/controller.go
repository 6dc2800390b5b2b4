package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/yaw2go/internal/controller"
)

const queryParamSince = "since"

func registerControllerEndpoints(rest *echo.Echo, h *handler) {
	group := rest.Group("/controller")

	group.GET("/", h.getStatus)
	group.GET("/samples/", h.getSamples)
	group.GET("/report/", h.getReport)
}

func (h *handler) getStatus(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, h.controller.Status(), indentationChar)
}

// returns all recorded samples, or only those after the index given by ?since=
func (h *handler) getSamples(c echo.Context) error {
	since := 0
	if value := c.QueryParam(queryParamSince); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return returnBadRequest(c, "'"+queryParamSince+"' must be a non-negative integer, got '"+value+"'")
		}
		since = parsed
	}
	return c.JSONPretty(http.StatusOK, h.controller.Samples().Since(since), indentationChar)
}

// returns the diagnostic report, only available after the run has finalized
func (h *handler) getReport(c echo.Context) error {
	if h.controller.Status().State != controller.StateFinalized.String() {
		return c.JSONPretty(http.StatusConflict, &Result{
			Name:    "Not finalized",
			Message: "The report is available once the run has finalized",
		}, indentationChar)
	}
	return c.JSONPretty(http.StatusOK, h.controller.Report(), indentationChar)
}
