// Package report turns a geocoded location and its daily forecast into the
// printed table and its JSON counterpart.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rodrigoasouza93/weather-cli/internal/dto"
	"github.com/rodrigoasouza93/weather-cli/internal/forecast"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
	"github.com/rodrigoasouza93/weather-cli/internal/weathercode"
)

const (
	apiDateLayout = "2006-01-02"
	dayLayout     = "2006-01-02 (Mon)"
	missing       = "-"
)

type Report struct {
	Lang     vo.Language
	Location dto.Location
	Timezone string
	Headers  []string
	Rows     [][]string
	Output   dto.ForecastOutput
}

// Build assembles the table rows. Series shorter than Time, and null entries,
// render as "-".
func Build(city vo.City, loc dto.Location, fc dto.ForecastResponse, lang vo.Language, tz vo.Timezone) (Report, error) {
	if fc.Daily == nil {
		return Report{}, fmt.Errorf("building report: %w", forecast.ErrNoDailyData)
	}
	daily := fc.Daily

	timezone := tz.Value()
	if timezone == vo.TimezoneAuto && fc.Timezone != "" {
		timezone = fc.Timezone
	}

	r := Report{
		Lang:     lang,
		Location: loc,
		Timezone: timezone,
		Headers:  Headers(lang),
		Rows:     make([][]string, 0, len(daily.Time)),
		Output: dto.ForecastOutput{
			City:      city.Value(),
			Label:     loc.Label(),
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Timezone:  timezone,
			Days:      make([]dto.DayOutput, 0, len(daily.Time)),
		},
	}

	for i, date := range daily.Time {
		day, err := time.Parse(apiDateLayout, date)
		if err != nil {
			return Report{}, fmt.Errorf("parsing forecast date %q: %w", date, err)
		}

		code := at(daily.WeatherCode, i)
		tmin := at(daily.TemperatureMin, i)
		tmax := at(daily.TemperatureMax, i)
		pop := at(daily.PrecipitationProbabilityMax, i)

		desc := missing
		if code != nil {
			desc = weathercode.Describe(*code, lang)
		}

		r.Rows = append(r.Rows, []string{
			day.Format(dayLayout),
			desc,
			celsius(tmin),
			celsius(tmax),
			percent(pop),
		})
		r.Output.Days = append(r.Output.Days, dto.DayOutput{
			Date:                     date,
			WeatherCode:              code,
			Weather:                  desc,
			TempMinC:                 tmin,
			TempMaxC:                 tmax,
			PrecipitationProbability: pop,
		})
	}
	return r, nil
}

// Render returns the location line followed by the table.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s  [lat=%.3f, lon=%.3f]  / TZ=%s\n",
		messagesFor(r.Lang).location, r.Location.Label(), r.Location.Latitude, r.Location.Longitude, r.Timezone)
	b.WriteString(FormatTable(r.Headers, r.Rows))
	return b.String()
}

func at[T any](series []*T, i int) *T {
	if i < len(series) {
		return series[i]
	}
	return nil
}

func celsius(v *float64) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("%.1f°C", *v)
}

func percent(v *float64) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}
