package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/foggyhq/foggybot/internal/ops"
	"github.com/foggyhq/foggybot/pkg/config"
	"github.com/foggyhq/foggybot/pkg/logger"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Normalize output artifacts",
	Long: `Normalize the report document and the config file: stable two-space
indentation and a single trailing newline. Files that are already
normalized are left untouched, so a fmt run never creates commit churn.`,
	RunE: runFmt,
}

func init() {
	if err := ops.RegisterCommand("fmt", ops.GroupPipeline, fmtCmd, "Normalize output artifacts"); err != nil {
		panic(fmt.Sprintf("Failed to register fmt command: %v", err))
	}

	fmtCmd.Flags().Bool("check", false, "Report files needing normalization without rewriting them")
}

func runFmt(cmd *cobra.Command, _ []string) error {
	check, _ := cmd.Flags().GetBool("check")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	targets := []struct {
		path      string
		normalize func([]byte) ([]byte, error)
	}{
		{cfg.Report.File, normalizeJSON},
		{".foggybot.yaml", normalizeYAML},
	}

	dirty := 0
	for _, target := range targets {
		raw, err := os.ReadFile(target.path) // #nosec G304 -- fixed artifact paths
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", target.path, err)
		}

		normalized, err := target.normalize(raw)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", target.path, err)
		}
		if bytes.Equal(raw, normalized) {
			continue
		}

		dirty++
		if check {
			cmd.Printf("%s needs formatting\n", target.path)
			continue
		}
		if err := os.WriteFile(target.path, normalized, 0o644); err != nil { // #nosec G306 -- public artifact
			return fmt.Errorf("write %s: %w", target.path, err)
		}
		logger.Info("normalized", logger.String("file", target.path))
	}

	if check && dirty > 0 {
		return fmt.Errorf("%d file(s) need formatting", dirty)
	}
	return nil
}

// normalizeJSON re-indents a JSON document with two spaces and a trailing
// newline, preserving key order.
func normalizeJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// normalizeYAML round-trips a YAML document through the encoder with
// two-space indentation.
func normalizeYAML(raw []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// Empty document; leave as-is.
		return raw, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
