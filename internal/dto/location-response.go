package dto

type Location struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
}

type GeocodingResponse struct {
	Results []Location `json:"results"`
}

// Label is the human readable place name, e.g. "Sapporo, Hokkaido (JP)".
func (l Location) Label() string {
	if l.Admin1 != "" {
		return l.Name + ", " + l.Admin1 + " (" + l.CountryCode + ")"
	}
	return l.Name + " (" + l.CountryCode + ")"
}
