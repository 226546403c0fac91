package weather

// ConditionStyle is the display label and glyph for an upstream condition
// keyword.
type ConditionStyle struct {
	Label string
	Icon  string
}

// DefaultIcon is used for condition keywords absent from the table.
const DefaultIcon = "🌡️"

// conditionTable maps OpenWeatherMap condition keywords to display styles.
// Populated once at process start and read-only afterwards, so it is safe
// for concurrent reads from any number of requests.
var conditionTable = map[string]ConditionStyle{
	"Clear":        {Label: "Sunny", Icon: "☀️"},
	"Clouds":       {Label: "Cloudy", Icon: "⛅"},
	"Rain":         {Label: "Rainy", Icon: "🌧️"},
	"Drizzle":      {Label: "Light Rain", Icon: "🌦️"},
	"Thunderstorm": {Label: "Thunderstorm", Icon: "⛈️"},
	"Snow":         {Label: "Snowy", Icon: "❄️"},
	"Mist":         {Label: "Misty", Icon: "🌫️"},
	"Smoke":        {Label: "Smoky", Icon: "🌫️"},
	"Haze":         {Label: "Hazy", Icon: "🌫️"},
	"Dust":         {Label: "Dusty", Icon: "🌫️"},
	"Fog":          {Label: "Foggy", Icon: "🌫️"},
	"Sand":         {Label: "Sandy", Icon: "🌫️"},
	"Ash":          {Label: "Ashy", Icon: "🌫️"},
	"Squall":       {Label: "Squally", Icon: "🌬️"},
	"Tornado":      {Label: "Tornado", Icon: "🌪️"},
}

// MapCondition translates an upstream condition keyword into its display
// style. Unknown keywords pass through as-is with the default glyph.
func MapCondition(keyword string) ConditionStyle {
	if style, ok := conditionTable[keyword]; ok {
		return style
	}
	return ConditionStyle{Label: keyword, Icon: DefaultIcon}
}
