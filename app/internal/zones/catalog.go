// Package zones holds the static risk-zone catalog shown on the map.
package zones

import "github.com/marketconnect/riskmap-agent/app/domain/entities"

var levels = [...]entities.AlertLevel{
	{Level: 0, Label: "Normal watch", Color: "#22c55e"},
	{Level: 1, Label: "Unusual activity", Color: "#eab308"},
	{Level: 2, Label: "Multiple reports", Color: "#f97316"},
	{Level: 3, Label: "Active risk", Color: "#ef4444"},
}

var catalog = [...]entities.Zone{
	{ID: 1, Title: "Zona Centro", Latitude: -0.1807, Longitude: -78.4678, Level: 0, Radius: 300},
	{ID: 2, Title: "Zona Norte", Latitude: -0.1725, Longitude: -78.4756, Level: 1, Radius: 250},
	{ID: 3, Title: "Zona Sur", Latitude: -0.1895, Longitude: -78.4725, Level: 2, Radius: 280},
	{ID: 4, Title: "Zona Este", Latitude: -0.1838, Longitude: -78.4595, Level: 3, Radius: 200},
	{ID: 5, Title: "Zona Oeste", Latitude: -0.1765, Longitude: -78.4835, Level: 0, Radius: 320},
}

// InitialRegion is the viewport the map opens on.
var InitialRegion = entities.Region{
	Latitude:       -0.1807,
	Longitude:      -78.4678,
	LatitudeDelta:  0.04,
	LongitudeDelta: 0.04,
}

// All returns a copy of the zone catalog.
func All() []entities.Zone {
	out := make([]entities.Zone, len(catalog))
	copy(out, catalog[:])
	return out
}

// Levels returns a copy of the severity palette, indexed by level.
func Levels() []entities.AlertLevel {
	out := make([]entities.AlertLevel, len(levels))
	copy(out, levels[:])
	return out
}

// Level looks up a palette entry.
func Level(level int) (entities.AlertLevel, bool) {
	if level < 0 || level >= len(levels) {
		return entities.AlertLevel{}, false
	}
	return levels[level], true
}
