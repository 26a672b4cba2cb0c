package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/foggyhq/foggybot/internal/capture"
	"github.com/foggyhq/foggybot/internal/gitgate"
	"github.com/foggyhq/foggybot/internal/ops"
	"github.com/foggyhq/foggybot/internal/pipeline"
	"github.com/foggyhq/foggybot/internal/reporter"
	"github.com/foggyhq/foggybot/internal/weather"
	"github.com/foggyhq/foggybot/pkg/config"
	"github.com/foggyhq/foggybot/pkg/logger"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the report pipeline once",
	Long: `Execute one pipeline run: capture the livestream thumbnail, fetch weather
data, synthesize the report, and commit the artifacts if they changed.

Credentials are read from the environment (a .env file is honored):
   OPENAI_API_KEY    language model credential
   YOUTUBE_API_KEY   YouTube Data API credential`,
	RunE: runRun,
}

func init() {
	if err := ops.RegisterCommand("run", ops.GroupPipeline, runCmd, "Execute the pipeline once"); err != nil {
		panic(fmt.Sprintf("Failed to register run command: %v", err))
	}

	runCmd.Flags().String("dir", ".", "Repository root holding the report and captures")
	runCmd.Flags().String("config", "", "Explicit config file (default: .foggybot.yaml discovery)")
	runCmd.Flags().Bool("no-commit", false, "Write artifacts but skip the persistence gate")
	runCmd.Flags().Bool("no-push", false, "Commit but do not push")
}

func runRun(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	noCommit, _ := cmd.Flags().GetBool("no-commit")
	noPush, _ := cmd.Flags().GetBool("no-push")

	// A .env next to the repo is honored but optional.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
		logger.Debug("loaded .env file")
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	youtubeKey := os.Getenv("YOUTUBE_API_KEY")
	if openaiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	if youtubeKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY environment variable is not set")
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	tz, err := time.LoadLocation(cfg.Location.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Location.Timezone, err)
	}

	weatherSource := weather.NewSource(
		weather.NewClient(weather.Options{
			BaseURL:   cfg.Weather.BaseURL,
			UserAgent: cfg.Weather.UserAgent,
			Periods:   cfg.Weather.ForecastPeriods,
		}),
		cfg.Location.Latitude,
		cfg.Location.Longitude,
	)

	capturesDir := filepath.Join(dir, cfg.Capture.Dir)
	videoSource := capture.NewService(
		capture.NewYouTubeClient(capture.YouTubeOptions{APIKey: youtubeKey}),
		capture.NewDownloader(capturesDir, nil, nil),
		cfg.Capture.VideoID,
	)

	summarizer := reporter.New(reporter.Options{
		ModelID:  cfg.LLM.Model,
		APIKey:   openaiKey,
		Timezone: tz,
	})

	reportFile := filepath.Join(dir, cfg.Report.File)
	p := pipeline.New(weatherSource, videoSource, summarizer, reportFile)

	logger.Info("starting pipeline run",
		logger.String("location", cfg.Location.Name),
		logger.String("video", cfg.Capture.VideoID))

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if noCommit {
		logger.Info("persistence gate skipped", logger.String("report", result.ReportPath))
		return nil
	}

	gate := gitgate.New(gitgate.Options{
		Dir:         dir,
		ReportFile:  cfg.Report.File,
		CapturesDir: cfg.Capture.Dir,
		AuthorName:  cfg.Git.AuthorName,
		AuthorEmail: cfg.Git.AuthorEmail,
		Message:     cfg.Git.Message,
		Remote:      cfg.Git.Remote,
	})

	gateResult, err := gate.Commit(!noPush)
	if err != nil {
		return err
	}
	if gateResult.Decision.Changed {
		logger.Info("run complete",
			logger.String("commit", gateResult.CommitHash),
			logger.Bool("pushed", gateResult.Pushed))
	} else {
		logger.Info("run complete, no changes to persist")
	}
	return nil
}
