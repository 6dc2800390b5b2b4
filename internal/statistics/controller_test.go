package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type staticStatus struct {
	status controller.Status
}

func (s staticStatus) Status() controller.Status {
	return s.status
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(staticStatus{status: controller.Status{
		State:     controller.StateTracking.String(),
		Driving:   true,
		SetPoint:  -5,
		LastYaw:   -3,
		Received:  25,
		Processed: 3,
		Discarded: 22,
	}})

	expected := `
# HELP yaw2go_controller_measurements_processed_total Counter for yaw measurements accepted after decimation
# TYPE yaw2go_controller_measurements_processed_total counter
yaw2go_controller_measurements_processed_total 3
# HELP yaw2go_controller_set_point_degrees Desired yaw of the current run
# TYPE yaw2go_controller_set_point_degrees gauge
yaw2go_controller_set_point_degrees -5
# HELP yaw2go_controller_state Current state of the heading controller, the active state has the value 1
# TYPE yaw2go_controller_state gauge
yaw2go_controller_state{state="awaiting_first_sample"} 0
yaw2go_controller_state{state="finalized"} 0
yaw2go_controller_state{state="tracking"} 1
# HELP yaw2go_propulsion_driving 1 while the propulsion journey is active
# TYPE yaw2go_propulsion_driving gauge
yaw2go_propulsion_driving 1
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"yaw2go_controller_measurements_processed_total",
		"yaw2go_controller_set_point_degrees",
		"yaw2go_controller_state",
		"yaw2go_propulsion_driving",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 12, testutil.CollectAndCount(collector))
}
