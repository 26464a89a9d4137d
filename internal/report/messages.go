package report

import (
	"errors"
	"fmt"

	"github.com/rodrigoasouza93/weather-cli/internal/forecast"
	"github.com/rodrigoasouza93/weather-cli/internal/geocode"
	"github.com/rodrigoasouza93/weather-cli/internal/vo"
)

type messages struct {
	location    string
	errorPrefix string
	notFound    string
	noDaily     string
	headers     []string
}

var (
	messagesJA = messages{
		location:    "場所",
		errorPrefix: "エラー",
		notFound:    "場所が見つかりませんでした: %s",
		noDaily:     "予報データの取得に失敗しました。",
		headers:     []string{"日付", "天気", "最低気温", "最高気温", "降水確率(最大)"},
	}
	messagesEN = messages{
		location:    "Location",
		errorPrefix: "Error",
		notFound:    "location not found: %s",
		noDaily:     "failed to retrieve forecast data.",
		headers:     []string{"Date", "Weather", "Min Temp", "Max Temp", "Precip Prob (max)"},
	}
)

func messagesFor(lang vo.Language) messages {
	if lang.IsJapanese() {
		return messagesJA
	}
	return messagesEN
}

// Headers returns the column titles of the forecast table.
func Headers(lang vo.Language) []string {
	h := messagesFor(lang).headers
	out := make([]string, len(h))
	copy(out, h)
	return out
}

// Describe turns err into the user facing message in lang, without prefix.
func Describe(err error, lang vo.Language) string {
	m := messagesFor(lang)
	var notFound *geocode.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf(m.notFound, notFound.City)
	case errors.Is(err, forecast.ErrNoDailyData):
		return m.noDaily
	default:
		return err.Error()
	}
}

// FormatError is the single line printed to stderr on failure.
func FormatError(err error, lang vo.Language) string {
	return messagesFor(lang).errorPrefix + ": " + Describe(err, lang)
}
