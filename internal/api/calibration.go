package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

const urlParamDegrees = "degrees"

type MappingResult struct {
	Degrees float64 `json:"degrees"`
	Command int     `json:"command"`
}

func registerCalibrationEndpoints(rest *echo.Echo, h *handler) {
	group := rest.Group("/calibration")

	group.GET("/", h.getCalibration)
	group.GET("/map/:"+urlParamDegrees+"/", h.mapAngle)
}

func (h *handler) getCalibration(c echo.Context) error {
	data := reprint.This(h.calibrator.Table())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (h *handler) mapAngle(c echo.Context) error {
	value := c.Param(urlParamDegrees)
	degrees, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return returnBadRequest(c, "'"+value+"' is not a valid angle")
	}
	return c.JSONPretty(http.StatusOK, &MappingResult{
		Degrees: degrees,
		Command: h.calibrator.Map(degrees),
	}, indentationChar)
}
