package surprise

// City is a named coordinate the surprise endpoint can pick.
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NorthAmericanCities is the default pool, inside the TEMPO/AirNow coverage area.
var NorthAmericanCities = []City{
	{Name: "New York, USA", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "Los Angeles, USA", Latitude: 34.0522, Longitude: -118.2437},
	{Name: "Chicago, USA", Latitude: 41.8781, Longitude: -87.6298},
	{Name: "Houston, USA", Latitude: 29.7604, Longitude: -95.3698},
	{Name: "Phoenix, USA", Latitude: 33.4484, Longitude: -112.0740},
	{Name: "Philadelphia, USA", Latitude: 39.9526, Longitude: -75.1652},
	{Name: "San Antonio, USA", Latitude: 29.4241, Longitude: -98.4936},
	{Name: "San Diego, USA", Latitude: 32.7157, Longitude: -117.1611},
	{Name: "Dallas, USA", Latitude: 32.7767, Longitude: -96.7970},
	{Name: "San Jose, USA", Latitude: 37.3382, Longitude: -121.8863},
	{Name: "Toronto, Canada", Latitude: 43.6532, Longitude: -79.3832},
	{Name: "Montreal, Canada", Latitude: 45.5017, Longitude: -73.5673},
	{Name: "Vancouver, Canada", Latitude: 49.2827, Longitude: -123.1207},
	{Name: "Ottawa, Canada", Latitude: 45.4215, Longitude: -75.6972},
	{Name: "Mexico City, Mexico", Latitude: 19.4326, Longitude: -99.1332},
	{Name: "Guadalajara, Mexico", Latitude: 20.6597, Longitude: -103.3496},
	{Name: "Monterrey, Mexico", Latitude: 25.6866, Longitude: -100.3161},
	{Name: "Tijuana, Mexico", Latitude: 32.5149, Longitude: -117.0382},
	{Name: "Cancun, Mexico", Latitude: 21.1619, Longitude: -86.8515},
	{Name: "Miami, USA", Latitude: 25.7617, Longitude: -80.1918},
	{Name: "Atlanta, USA", Latitude: 33.7490, Longitude: -84.3880},
	{Name: "Seattle, USA", Latitude: 47.6062, Longitude: -122.3321},
	{Name: "Boston, USA", Latitude: 42.3601, Longitude: -71.0589},
	{Name: "Denver, USA", Latitude: 39.7392, Longitude: -104.9903},
	{Name: "Minneapolis, USA", Latitude: 44.9778, Longitude: -93.2650},
	{Name: "Quebec City, Canada", Latitude: 46.8139, Longitude: -71.2080},
	{Name: "Calgary, Canada", Latitude: 51.0447, Longitude: -114.0719},
	{Name: "Winnipeg, Canada", Latitude: 49.8951, Longitude: -97.1384},
	{Name: "Edmonton, Canada", Latitude: 53.55, Longitude: -113.49},
	{Name: "Havana, Cuba", Latitude: 23.13, Longitude: -82.36},
	{Name: "Santo Domingo, Dominican Republic", Latitude: 18.46, Longitude: -69.94},
	{Name: "Panama City, Panama", Latitude: 8.98, Longitude: -79.52},
	{Name: "San Juan, Puerto Rico", Latitude: 18.42, Longitude: -66.06},
}
