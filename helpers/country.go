package helpers

import "strings"

var countryNames = map[string]string{
	"IN": "India",
	"US": "United States",
	"GB": "United Kingdom",
	"CA": "Canada",
	"AU": "Australia",
	"DE": "Germany",
	"FR": "France",
	"JP": "Japan",
	"CN": "China",
	"BR": "Brazil",
	"ZA": "South Africa",
	"RU": "Russia",
	"IT": "Italy",
	"ES": "Spain",
	"MX": "Mexico",
	"KR": "South Korea",
	"NL": "Netherlands",
}

// CountryName resolves an ISO country code to its display name. Unknown
// codes are returned unchanged.
func CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}
