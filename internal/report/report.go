package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/yaw2go/internal/configuration"
	"github.com/markusressel/yaw2go/internal/recorder"
	"github.com/markusressel/yaw2go/internal/util"
	"gopkg.in/yaml.v3"
)

// Report is the diagnostic bundle of a finished run
type Report struct {
	Kp         float64           `json:"kp" yaml:"kp"`
	InitialYaw float64           `json:"initialYaw" yaml:"initialYaw"`
	SetPoint   float64           `json:"setPoint" yaml:"setPoint"`
	FinalYaw   float64           `json:"finalYaw" yaml:"finalYaw"`
	Samples    []recorder.Sample `json:"samples" yaml:"samples"`
}

// Duration returns the elapsed time of the last sample in seconds
func (r Report) Duration() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	return r.Samples[len(r.Samples)-1].ElapsedSeconds
}

// RmsError returns the root mean square of the yaw error over all samples
func (r Report) RmsError() float64 {
	return math.Sqrt(util.Avg(r.SquaredErrors()))
}

func (r Report) SquaredErrors() []float64 {
	result := make([]float64, len(r.Samples))
	for i, sample := range r.Samples {
		result[i] = sample.SquaredError
	}
	return result
}

func (r Report) HeadingCommands() []float64 {
	result := make([]float64, len(r.Samples))
	for i, sample := range r.Samples {
		result[i] = sample.HeadingCommand
	}
	return result
}

// Export writes the report to the given path in the given format
func Export(path string, format string, r Report) error {
	var data []byte
	var err error
	switch format {
	case configuration.ReportFormatYaml:
		data, err = yaml.Marshal(r)
	case configuration.ReportFormatJson:
		data, err = json.MarshalIndent(r, "", "  ")
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}

// Load reads a report exported by Export, the format is detected by the file extension
func Load(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return r, fmt.Errorf("invalid report file %s: %w", path, err)
	}
	return r, nil
}
