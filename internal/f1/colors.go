package f1

// TeamColors maps team names to their primary hex color for charts and
// exported plots.
var TeamColors = map[string]string{
	"Red Bull":     "#1E41FF",
	"Ferrari":      "#DC0000",
	"Mercedes":     "#00D2BE",
	"McLaren":      "#FF8700",
	"Aston Martin": "#006F62",
	"Alpine":       "#0090FF",
	"Williams":     "#005AFF",
	"RB":           "#6692FF",
	"Kick Sauber":  "#52E252",
	"Haas":         "#B6BABD",
}

// DefaultTeamColor is used for teams without a configured color.
const DefaultTeamColor = "#FFFFFF"

// TeamColor returns the configured color for a team, or DefaultTeamColor.
func TeamColor(team string) string {
	if c, ok := TeamColors[team]; ok {
		return c
	}
	return DefaultTeamColor
}
