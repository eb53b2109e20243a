package entities

// Zone is a static geographic record shown on the risk map.
type Zone struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Level     int     `json:"level"`
	Radius    int     `json:"radius"`
}

// AlertLevel is one entry of the severity palette.
type AlertLevel struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Region is the initial map viewport.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}
