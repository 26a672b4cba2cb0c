package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/foggyhq/foggybot/internal/ops"
	"github.com/foggyhq/foggybot/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	if err := ops.RegisterCommand("version", ops.GroupSupport, versionCmd, "Show version"); err != nil {
		panic(fmt.Sprintf("Failed to register version command: %v", err))
	}

	versionCmd.Flags().Bool("extended", false, "Show extended build information")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")

	cmd.Printf("foggybot %s\n", buildinfo.BinaryVersion)
	if !extended {
		return nil
	}

	if mv := buildinfo.ModuleVersion(); mv != "" {
		cmd.Printf("module:   %s\n", mv)
	}
	if rev := buildinfo.VCSRevision(); rev != "" {
		cmd.Printf("revision: %s\n", rev)
	}
	cmd.Printf("go:       %s\n", runtime.Version())
	cmd.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
