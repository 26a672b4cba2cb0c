package weather

// Location describes the resolved report location.
type Location struct {
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Conditions holds the latest observed conditions from the nearest station.
// Pointer fields are nil when the station did not report a value.
type Conditions struct {
	Timestamp    string   `json:"timestamp"`
	TemperatureF *float64 `json:"temperature_f"`
	TemperatureC *float64 `json:"temperature_c"`
	Humidity     *float64 `json:"humidity"`
	WindSpeedMPH *float64 `json:"wind_speed_mph"`
	WindDegrees  *float64 `json:"wind_direction"`
	Description  string   `json:"description"`
}

// ForecastPeriod is one named forecast window as returned by the forecast
// endpoint. Field names follow the upstream API so the persisted document
// matches what the service publishes.
type ForecastPeriod struct {
	Number           int    `json:"number"`
	Name             string `json:"name"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	IsDaytime        bool   `json:"isDaytime"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

// Data is a full weather snapshot for one location.
type Data struct {
	Location Location         `json:"location"`
	Current  Conditions       `json:"current_conditions"`
	Forecast []ForecastPeriod `json:"forecast"`
}

// Upstream response shapes (api.weather.gov).

type pointsResponse struct {
	Properties struct {
		Forecast            string `json:"forecast"`
		ObservationStations string `json:"observationStations"`
		RelativeLocation    struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

type stationsResponse struct {
	Features []struct {
		ID string `json:"id"`
	} `json:"features"`
}

type observationResponse struct {
	Properties struct {
		Timestamp   string `json:"timestamp"`
		Temperature struct {
			Value *float64 `json:"value"`
		} `json:"temperature"`
		RelativeHumidity struct {
			Value *float64 `json:"value"`
		} `json:"relativeHumidity"`
		WindSpeed struct {
			Value *float64 `json:"value"`
		} `json:"windSpeed"`
		WindDirection struct {
			Value *float64 `json:"value"`
		} `json:"windDirection"`
		TextDescription string `json:"textDescription"`
	} `json:"properties"`
}
