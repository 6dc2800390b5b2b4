package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/markusressel/yaw2go/internal/calibration"
	"github.com/markusressel/yaw2go/internal/controller"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockController struct {
	mu       sync.Mutex
	state    controller.State
	recorder *recorder.Recorder
}

func (m *MockController) Status() controller.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return controller.Status{
		State:     m.state.String(),
		SetPoint:  -5,
		Processed: m.recorder.Len(),
	}
}

func (m *MockController) Samples() *recorder.Recorder {
	return m.recorder
}

func (m *MockController) Report() report.Report {
	return report.Report{Kp: 0.85, SetPoint: -5, Samples: m.recorder.Samples()}
}

func (m *MockController) setState(state controller.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

func createService(t *testing.T) (*MockController, http.Handler) {
	calibrator, err := calibration.NewCalibrator(calibration.Table{
		KnownAngles:   []float64{0, 90, 180},
		CommandLevels: []int{0, 3, 6},
	})
	require.NoError(t, err)

	c := &MockController{state: controller.StateTracking, recorder: recorder.New()}
	c.recorder.Append(recorder.Sample{ElapsedSeconds: 0, SquaredError: 100, HeadingCommand: -8.5})
	c.recorder.Append(recorder.Sample{ElapsedSeconds: 0.5, SquaredError: 4, HeadingCommand: -1.7})
	return c, CreateRestService(c, calibrator, false)
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/controller/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status controller.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "tracking", status.State)
	assert.Equal(t, -5.0, status.SetPoint)
	assert.Equal(t, 2, status.Processed)
}

func TestGetSamples(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/controller/samples/?since=1")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var samples []recorder.Sample
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	assert.Equal(t, []recorder.Sample{{ElapsedSeconds: 0.5, SquaredError: 4, HeadingCommand: -1.7}}, samples)
}

func TestGetSamples_InvalidSince(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/controller/samples/?since=abc")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a non-negative integer")
}

func TestGetReport(t *testing.T) {
	// GIVEN
	c, service := createService(t)

	// WHEN
	rec := get(service, "/controller/report/")

	// THEN
	assert.Equal(t, http.StatusConflict, rec.Code)

	// WHEN
	c.setState(controller.StateFinalized)
	rec = get(service, "/controller/report/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var r report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, 0.85, r.Kp)
	assert.Len(t, r.Samples, 2)
}

func TestGetCalibration(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/calibration/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var table calibration.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, []float64{0, 90, 180}, table.KnownAngles)
	assert.Equal(t, []int{0, 3, 6}, table.CommandLevels)
}

func TestMapAngle(t *testing.T) {
	// GIVEN
	_, service := createService(t)

	// WHEN
	rec := get(service, "/calibration/map/45/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result MappingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, MappingResult{Degrees: 45, Command: 2}, result)

	// WHEN
	rec = get(service, "/calibration/map/north/")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreamSamples(t *testing.T) {
	// GIVEN
	c, service := createService(t)
	server := httptest.NewServer(service)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/samples/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	// WHEN
	var initial []recorder.Sample
	err = conn.ReadJSON(&initial)

	// THEN
	require.NoError(t, err)
	assert.Len(t, initial, 2)

	// WHEN
	c.recorder.Append(recorder.Sample{ElapsedSeconds: 1, SquaredError: 1, HeadingCommand: 0.85})
	c.setState(controller.StateFinalized)
	var update []recorder.Sample
	err = conn.ReadJSON(&update)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []recorder.Sample{{ElapsedSeconds: 1, SquaredError: 1, HeadingCommand: 0.85}}, update)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}
