package statistics

import (
	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	controllerSubsystem = "controller"
	propulsionSubsystem = "propulsion"
)

type StatusProvider interface {
	Status() controller.Status
}

type ControllerCollector struct {
	controller StatusProvider

	state            *prometheus.Desc
	yaw              *prometheus.Desc
	setPoint         *prometheus.Desc
	output           *prometheus.Desc
	squaredError     *prometheus.Desc
	rmsError         *prometheus.Desc
	receivedCount    *prometheus.Desc
	processedCount   *prometheus.Desc
	discardedCount   *prometheus.Desc
	propulsionActive *prometheus.Desc
}

func NewControllerCollector(controller StatusProvider) *ControllerCollector {
	return &ControllerCollector{
		controller: controller,
		state: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "state"),
			"Current state of the heading controller, the active state has the value 1",
			[]string{"state"}, nil,
		),
		yaw: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "yaw_degrees"),
			"Last accepted yaw measurement",
			nil, nil,
		),
		setPoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "set_point_degrees"),
			"Desired yaw of the current run",
			nil, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "output_degrees"),
			"Last steering angle computed by the control law",
			nil, nil,
		),
		squaredError: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "squared_error"),
			"Squared yaw error of the last accepted measurement",
			nil, nil,
		),
		rmsError: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "rms_error_degrees"),
			"Root mean square of the yaw error over the last samples",
			nil, nil,
		),
		receivedCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "measurements_received_total"),
			"Counter for all yaw measurements received by the controller",
			nil, nil,
		),
		processedCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "measurements_processed_total"),
			"Counter for yaw measurements accepted after decimation",
			nil, nil,
		),
		discardedCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "measurements_discarded_total"),
			"Counter for yaw measurements skipped by decimation",
			nil, nil,
		),
		propulsionActive: prometheus.NewDesc(prometheus.BuildFQName(namespace, propulsionSubsystem, "driving"),
			"1 while the propulsion journey is active",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.state
	ch <- collector.yaw
	ch <- collector.setPoint
	ch <- collector.output
	ch <- collector.squaredError
	ch <- collector.rmsError
	ch <- collector.receivedCount
	ch <- collector.processedCount
	ch <- collector.discardedCount
	ch <- collector.propulsionActive
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.controller.Status()

	for _, state := range []controller.State{controller.StateAwaitingFirstSample, controller.StateTracking, controller.StateFinalized} {
		ch <- prometheus.MustNewConstMetric(collector.state, prometheus.GaugeValue, boolToFloat(status.State == state.String()), state.String())
	}
	ch <- prometheus.MustNewConstMetric(collector.yaw, prometheus.GaugeValue, status.LastYaw)
	ch <- prometheus.MustNewConstMetric(collector.setPoint, prometheus.GaugeValue, status.SetPoint)
	ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, status.LastOutput)
	ch <- prometheus.MustNewConstMetric(collector.squaredError, prometheus.GaugeValue, status.LastSquaredError)
	ch <- prometheus.MustNewConstMetric(collector.rmsError, prometheus.GaugeValue, status.RmsError)
	ch <- prometheus.MustNewConstMetric(collector.receivedCount, prometheus.CounterValue, float64(status.Received))
	ch <- prometheus.MustNewConstMetric(collector.processedCount, prometheus.CounterValue, float64(status.Processed))
	ch <- prometheus.MustNewConstMetric(collector.discardedCount, prometheus.CounterValue, float64(status.Discarded))
	ch <- prometheus.MustNewConstMetric(collector.propulsionActive, prometheus.GaugeValue, boolToFloat(status.Driving))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
