package reporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/foggyhq/foggybot/internal/weather"
)

// comfortMatrix guides the model's temperature/humidity phrasing. It is
// embedded verbatim into the prompt.
const comfortMatrix = `{
  "temp_ranges": [30, 40, 50, 60, 70, 80, 90, 100],
  "humidity_ranges": [20, 30, 40, 50, 60, 70, 80, 90],
  "comfort_levels": {
    "cold": {"range": "<=40", "desc": "Cold, humidity less relevant"},
    "chilly": {"range": "<=50", "desc": "Chilly"},
    "cool_dry": {"range": "51-65, RH<40", "desc": "Cool & crisp"},
    "cool": {"range": "51-65, RH>=40", "desc": "Pleasant & cool"},
    "comfortable_dry": {"range": "66-75, RH<40", "desc": "Perfect conditions"},
    "comfortable": {"range": "66-75, RH<60", "desc": "Ideal comfort"},
    "warm_humid": {"range": "66-75, RH>=60", "desc": "Slightly muggy"},
    "warm_dry": {"range": "76-85, RH<40", "desc": "Warm but manageable"},
    "warm_sticky": {"range": "76-85, RH<60", "desc": "Warm and sticky"},
    "hot_humid": {"range": "76-85, RH>=60", "desc": "Uncomfortably humid"},
    "hot_dry": {"range": ">85, RH<40", "desc": "Very hot"},
    "dangerous": {"range": ">85, RH>=40", "desc": "Oppressively humid"}
  }
}`

const promptTemplate = `
Here are the current conditions in %[1]s, %[2]s:
%[3]s

Below is the weather forecast for %[1]s, %[2]s:
%[4]s

Current local date and time: %[5]s

Considering this image and the weather forecast, assess the weather,
specifically looking for where any preciptitation is, the clarity of the day,
and more. The image is a view of the beach in %[1]s, %[2]s, looking east
from a parks department building towards Lake Michigan.

Considering your assessment of the weather, please write a weather report for
%[1]s capturing:

- Current conditions
- Expected weather for the day
- Pleasant/unpleasant appearance
- Wave conditions
- Precipitation
- Recommended attire
- Temperature seasonality - consider the current season and region of the world
  the report is taking place in, and note if the temperature is roughly typical
  or not.
- Suggested activities given conditions, day, time, and location
- If the date happens to be a major U.S. or religious holiday, or election day,
  make note of it in your report. If it's not a holiday, don't mention it,
  unless a holiday is coming up in the next few days or weeks.

Take care not to mistake the current conditions for the upcoming forecast.

Style Guidelines:

- Write 1-2 single paragraphs
- No headers or special formatting
- No bullet points or exclamation marks
- Don't reference the images as input
- Instead of saying the wind speed in MPH, characterize it with standard
  descriptive words, like "still", "blustery", "gentle", "light", "calm",
  "whispering", "soothing", "howling", "fierce", "wild", "gusty", "breezy",
  "gale", etc., but feel free to draw from more synonyms that are appropriate
- Instead of stating humidity directly, characterize the overall feel using
  descriptive phrases that combine temperature and humidity effects, such as:
  "crisp and cool", "perfectly comfortable", "pleasantly dry", "ideal
  conditions", "slightly muggy", "sticky", "uncomfortably humid", or similar
  terms that reflect the comfort matrix below. The description should account
  for both temperature and humidity levels.
- Instead of saying the temperature as a specific number, say where it falls in
  the tens, for example, use "high 70s" for 79, "low 40s" for 42, or "mid 30s"
  for 34.
- Use emotive words more than numbers/figures, but avoid being flowery
- Write like a news journalist describing the scene
- Aim for a style suitable for reading on classical radio
- Combine the voice of Chicago news anchor Bill Kurtis, meteorologist Tom
  Skilling, and raconteur Studs Terkel
- Try to keep response under 500 words

After the weather report, please provide an HTML color code that best
represents the weather forecast, time of day, and the image. Output only the
hex code on a line by itself. Do not refer to the color code at all in the
report otherwise.

COMFORT_MATRIX = %[6]s
`

// buildPrompt renders the report prompt for one weather snapshot.
func buildPrompt(data *weather.Data, now time.Time) string {
	prompt := fmt.Sprintf(promptTemplate,
		data.Location.Name,
		data.Location.State,
		formatConditions(data.Current),
		formatForecast(data.Forecast),
		now.Format("2006-01-02 15:04:05"),
		comfortMatrix,
	)
	return strings.TrimSpace(prompt)
}

func formatForecast(periods []weather.ForecastPeriod) string {
	lines := make([]string, 0, len(periods))
	for _, period := range periods {
		lines = append(lines, fmt.Sprintf(" - %s: %s", period.Name, period.DetailedForecast))
	}
	return strings.Join(lines, "\n")
}

func formatConditions(c weather.Conditions) string {
	return fmt.Sprintf(`- Temperature (F): %s
- Humidity (%%): %s
- Wind speed (MPH): %s
- Wind direction (degrees): %s
- Description: %s`,
		formatValue(c.TemperatureF),
		formatValue(c.Humidity),
		formatValue(c.WindSpeedMPH),
		formatValue(c.WindDegrees),
		c.Description,
	)
}

func formatValue(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%g", *v)
}
