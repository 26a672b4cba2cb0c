package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foggyhq/foggybot/internal/ops"
	"github.com/foggyhq/foggybot/pkg/config"
	"github.com/foggyhq/foggybot/pkg/textwrap"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the current weather report",
	Long: `Print the weather_report field of the report document, word-wrapped so
no line exceeds the configured column width.`,
	RunE: runReport,
}

func init() {
	if err := ops.RegisterCommand("report", ops.GroupPipeline, reportCmd, "Print the current report"); err != nil {
		panic(fmt.Sprintf("Failed to register report command: %v", err))
	}

	reportCmd.Flags().String("file", "", "Report file (default from config)")
	reportCmd.Flags().Int("width", 0, "Wrap width in columns (default from config)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	width, _ := cmd.Flags().GetInt("width")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if file == "" {
		file = cfg.Report.File
	}
	if width <= 0 {
		width = cfg.Report.Width
	}

	text, err := readReportText(file)
	if err != nil {
		return err
	}

	cmd.Println(textwrap.Wrap(text, width))
	return nil
}

// readReportText extracts the weather_report field from the report document.
func readReportText(path string) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is user-chosen CLI input
	if err != nil {
		return "", fmt.Errorf("read report file: %w", err)
	}

	var doc struct {
		WeatherReport string `json:"weather_report"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse report file %s: %w", path, err)
	}
	if doc.WeatherReport == "" {
		return "", fmt.Errorf("report file %s has no weather_report field", path)
	}
	return doc.WeatherReport, nil
}
