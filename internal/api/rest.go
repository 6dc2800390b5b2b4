package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/report"
)

// Controller is the read-only view of a heading controller exposed by the API
type Controller interface {
	Status() controller.Status
	Samples() *recorder.Recorder
	Report() report.Report
}

type handler struct {
	controller Controller
	calibrator *calibration.Calibrator
}

// CreateRestService creates the REST API for the given controller.
// If withMetrics is set, request metrics are recorded for the statistics endpoint.
func CreateRestService(controller Controller, calibrator *calibration.Calibrator, withMetrics bool) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	if withMetrics {
		echoRest.Use(echoprometheus.NewMiddleware("yaw2go_api"))
	}

	h := &handler{
		controller: controller,
		calibrator: calibrator,
	}

	echoRest.GET("/alive/", isAlive)

	registerControllerEndpoints(echoRest, h)
	registerCalibrationEndpoints(echoRest, h)
	registerWebsocketEndpoint(echoRest, h)

	return echoRest
}
