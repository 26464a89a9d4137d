package dto

type DayOutput struct {
	Date                     string   `json:"date"`
	WeatherCode              *int     `json:"weather_code"`
	Weather                  string   `json:"weather"`
	TempMinC                 *float64 `json:"temp_min_c"`
	TempMaxC                 *float64 `json:"temp_max_c"`
	PrecipitationProbability *float64 `json:"precipitation_probability_max"`
}

type ForecastOutput struct {
	City      string      `json:"city"`
	Label     string      `json:"label"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  string      `json:"timezone"`
	Days      []DayOutput `json:"days"`
}
