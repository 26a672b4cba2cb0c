// Package reporter synthesizes the free-text weather report from a weather
// snapshot and the latest capture image.
package reporter

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
	"github.com/hoangvvo/llm-sdk/sdk-go/openai"

	"github.com/foggyhq/foggybot/internal/weather"
	"github.com/foggyhq/foggybot/pkg/logger"
)

// Report is the document persisted to weather_report.json.
type Report struct {
	ForecastData  *weather.Data `json:"forecast_data"`
	WeatherReport string        `json:"weather_report"`
	ColorCode     string        `json:"color_code"`
	Timestamp     string        `json:"timestamp"`
}

// Reporter turns weather data plus a capture image into a Report.
type Reporter struct {
	model    llmsdk.LanguageModel
	timezone *time.Location
	now      func() time.Time
}

// Options configures a Reporter.
type Options struct {
	// Model overrides the language model; when nil an OpenAI model is
	// constructed from ModelID and APIKey.
	Model    llmsdk.LanguageModel
	ModelID  string
	APIKey   string
	Timezone *time.Location
	Now      func() time.Time
}

// New creates a Reporter.
func New(opts Options) *Reporter {
	model := opts.Model
	if model == nil {
		model = openai.NewOpenAIModel(opts.ModelID, openai.OpenAIModelOptions{
			APIKey: opts.APIKey,
		})
	}
	tz := opts.Timezone
	if tz == nil {
		tz = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Reporter{model: model, timezone: tz, now: now}
}

// colorCodeRe matches a 3- or 6-digit HTML hex color code.
var colorCodeRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}){1,2}\b`)

// Generate asks the model for a report given the weather snapshot and the
// capture image on disk. The hex color code the model appends is extracted
// and stripped from the report text.
func (r *Reporter) Generate(ctx context.Context, data *weather.Data, imagePath string) (*Report, error) {
	now := r.now().In(r.timezone)
	prompt := buildPrompt(data, now)

	imageData, err := os.ReadFile(imagePath) // #nosec G304 -- path comes from our own capture step
	if err != nil {
		return nil, fmt.Errorf("read capture image: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(imageData)

	response, err := r.model.Generate(ctx, &llmsdk.LanguageModelInput{
		Messages: []llmsdk.Message{
			llmsdk.NewUserMessage(
				llmsdk.NewTextPart(prompt),
				llmsdk.NewImagePart(encoded, "image/jpeg"),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	text := responseText(response)
	if text == "" {
		return nil, fmt.Errorf("model returned no text content")
	}

	colorCode := colorCodeRe.FindString(text)
	report := text
	if colorCode != "" {
		report = strings.ReplaceAll(report, colorCode, "")
	}
	report = strings.TrimRight(report, " \t\n")

	logger.Info("report synthesized",
		logger.Int("chars", len(report)),
		logger.String("color", colorCode))

	return &Report{
		ForecastData:  data,
		WeatherReport: report,
		ColorCode:     colorCode,
		Timestamp:     now.Format("2006-01-02 15:04:05"),
	}, nil
}

func responseText(response *llmsdk.ModelResponse) string {
	var builder strings.Builder
	for _, part := range response.Content {
		if part.TextPart != nil {
			builder.WriteString(part.TextPart.Text)
		}
	}
	return builder.String()
}
