package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/yaw2go/internal/actuator"
	"github.com/markusressel/yaw2go/internal/api"
	"github.com/markusressel/yaw2go/internal/bus"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/configuration"
	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/markusressel/yaw2go/internal/propulsion"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/report"
	"github.com/markusressel/yaw2go/internal/simulation"
	"github.com/markusressel/yaw2go/internal/statistics"
	"github.com/markusressel/yaw2go/internal/ui"
	"github.com/markusressel/yaw2go/internal/util"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pterm/pterm"
)

const shutdownTimeout = 5 * time.Second

var ErrInterrupted = errors.New("interrupted before the run finalized")

// Actor is an additional component that runs alongside the controller until ctx is done
type Actor func(ctx context.Context) error

// RunController connects to the configured broker and performs a single run
func RunController() error {
	b, err := bus.NewMqttBus(configuration.CurrentConfig.Bus)
	if err != nil {
		return fmt.Errorf("cannot connect to message bus: %w", err)
	}
	defer b.Close()

	_, err = Run(context.Background(), configuration.CurrentConfig, b, util.NewSystemClock())
	return err
}

// RunSimulation performs a single run against a simulated vehicle on an in-process bus
func RunSimulation(params simulation.Parameters) error {
	cfg := configuration.CurrentConfig
	b := bus.NewMemoryBus()
	defer b.Close()

	calibrator, err := calibration.NewCalibrator(cfg.Steering.Calibration.Table())
	if err != nil {
		return fmt.Errorf("Steering: invalid calibration: %w", err)
	}
	vehicle, err := simulation.NewVehicle(b, simulation.Topics{
		Yaw:        cfg.Controller.MeasurementTopic,
		Steering:   cfg.Steering.Topic,
		Propulsion: cfg.Propulsion.Topic,
	}, calibrator, params)
	if err != nil {
		return fmt.Errorf("cannot create simulated vehicle: %w", err)
	}

	_, err = Run(context.Background(), cfg, b, util.NewSystemClock(), vehicle.Run)
	return err
}

// Run wires a heading controller to the given bus and blocks until the run
// has finalized, failed or ctx is done. Unless the run finalized, the neutral
// propulsion command is sent before returning.
func Run(ctx context.Context, cfg configuration.Configuration, b bus.Bus, clock util.Clock, actors ...Actor) (report.Report, error) {
	calibrator, err := calibration.NewCalibrator(cfg.Steering.Calibration.Table())
	if err != nil {
		return report.Report{}, fmt.Errorf("Steering: invalid calibration: %w", err)
	}

	timer := propulsion.NewTimer(actuator.New(b, cfg.Propulsion.Topic), cfg.Propulsion.Speed, cfg.Propulsion.Duration, clock)
	headingController, err := controller.New(
		controller.Parameters{
			Kp:               cfg.Controller.Kp,
			SetPointOffset:   cfg.Controller.SetPointOffset,
			DecimationFactor: cfg.Controller.DecimationFactor,
			ErrorWindowSize:  cfg.Controller.ErrorWindowSize,
		},
		calibrator,
		actuator.New(b, cfg.Steering.Topic),
		timer,
		recorder.New(),
		clock,
	)
	if err != nil {
		return report.Report{}, fmt.Errorf("Controller: %w", err)
	}

	measurements, err := subscribeMeasurements(b, cfg.Controller.MeasurementTopic, cfg.Controller.QueueSize)
	if err != nil {
		stopJourney(timer)
		return report.Report{}, err
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var result report.Report
	var g run.Group
	{
		// === control loop
		loop := controller.NewLoop(headingController, timer, clock, cfg.Controller.StaleMeasurementTimeout)
		g.Add(func() error {
			ui.Info("Waiting for yaw measurements on '%s'...", cfg.Controller.MeasurementTopic)
			r, err := loop.Run(ctx, measurements)
			if err != nil {
				return err
			}
			result = r
			return nil
		}, func(err error) {
			cancel()
		})
	}
	if cfg.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.Register(statistics.NewControllerCollector(headingController))

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Statistics.Port),
			Handler: promhttp.Handler(),
		}
		addServer(&g, "statistics", func() error {
			return server.ListenAndServe()
		}, server.Shutdown)
	}
	if cfg.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(headingController, calibrator, cfg.Statistics.Enabled)
		addr := fmt.Sprintf("%s:%d", cfg.Api.Host, cfg.Api.Port)
		addServer(&g, "api", func() error {
			ui.Info("REST API listening on %s", addr)
			return rest.Start(addr)
		}, rest.Shutdown)
	}
	for _, actor := range actors {
		a := actor
		g.Add(func() error {
			return a(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
				return ErrInterrupted
			case <-ctx.Done():
				return ctx.Err()
			}
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if headingController.State() != controller.StateFinalized {
		if parent.Err() != nil {
			err = parent.Err()
		} else if err == nil {
			err = ErrInterrupted
		}
	}
	if err != nil {
		stopJourney(timer)
		return report.Report{}, err
	}

	ui.Success("Run finalized after %d samples", len(result.Samples))
	return result, handleReport(cfg.Report, result)
}

// subscribeMeasurements decodes yaw measurements into a bounded queue,
// measurements that arrive while the queue is full are dropped
func subscribeMeasurements(b bus.Bus, topic string, size int) (<-chan float64, error) {
	measurements := make(chan float64, size)
	err := b.Subscribe(topic, func(payload []byte) {
		yaw, err := bus.DecodeYaw(payload)
		if err != nil {
			ui.Warning("%v", err)
			return
		}
		select {
		case measurements <- yaw:
		default:
			ui.Debug("Measurement queue is full, dropping yaw %.2f°", yaw)
		}
	})
	return measurements, err
}

func addServer(g *run.Group, name string, serve func() error, shutdown func(ctx context.Context) error) {
	g.Add(func() error {
		err := serve()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s server: %w", name, err)
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

// stopJourney emits the neutral propulsion command, the vehicle must never keep driving
func stopJourney(timer *propulsion.Timer) {
	if err := timer.Stop(); err != nil {
		ui.Error("Failed to stop propulsion: %v", err)
	}
}

func handleReport(cfg configuration.ReportConfig, r report.Report) error {
	if cfg.Plot {
		text, err := report.Render(r, pterm.PrintColor)
		if err != nil {
			return err
		}
		ui.Printfln("%s", text)
	}
	if cfg.Path != "" {
		err := report.Export(cfg.Path, cfg.Format, r)
		if err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		ui.Info("Report written to %s", cfg.Path)
	}
	return nil
}
