// Package weathercode translates WMO weather interpretation codes, as
// returned by Open-Meteo, into short descriptions.
package weathercode

import (
	"fmt"

	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

var japanese = map[int]string{
	0:  "快晴",
	1:  "ほぼ快晴",
	2:  "晴れ時々くもり",
	3:  "くもり",
	45: "霧",
	48: "着氷性霧",
	51: "霧雨(弱)",
	53: "霧雨(中)",
	55: "霧雨(強)",
	56: "着氷性霧雨(弱)",
	57: "着氷性霧雨(強)",
	61: "雨(弱)",
	63: "雨(中)",
	65: "雨(強)",
	66: "着氷性雨(弱)",
	67: "着氷性雨(強)",
	71: "雪(弱)",
	73: "雪(中)",
	75: "雪(強)",
	77: "雪あられ",
	80: "にわか雨(弱)",
	81: "にわか雨(中)",
	82: "にわか雨(強)",
	85: "にわか雪(弱)",
	86: "にわか雪(強)",
	95: "雷雨",
	96: "雷雨(弱いひょう)",
	99: "雷雨(強いひょう)",
}

var english = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe returns the description of code in lang. Japanese gets the
// Japanese table, every other language the English one.
func Describe(code int, lang vo.Language) string {
	if lang.IsJapanese() {
		if desc, ok := japanese[code]; ok {
			return desc
		}
		return fmt.Sprintf("不明(%d)", code)
	}
	if desc, ok := english[code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown(%d)", code)
}

// Known reports whether code is a defined WMO code.
func Known(code int) bool {
	_, ok := english[code]
	return ok
}
