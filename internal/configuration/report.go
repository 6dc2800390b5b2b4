package configuration

const (
	ReportFormatJson = "json"
	ReportFormatYaml = "yaml"
)

type ReportConfig struct {
	// Print the sample plots to the console when the run has finished
	Plot bool `json:"plot"`
	// Export the run report to this file, disabled if empty
	Path   string `json:"path"`
	Format string `json:"format"`
}
