package geo

// City is one entry in the embedded city database offered by the
// `--geo` picker. The list favors timezone and hemisphere diversity
// over exhaustiveness; it is a convenience shortcut, not a geocoder.
type City struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Cities is the embedded city database searched by the picker.
var Cities = []City{
	{"New York", "United States", 40.7128, -74.0060},
	{"Los Angeles", "United States", 34.0522, -118.2437},
	{"Chicago", "United States", 41.8781, -87.6298},
	{"Toronto", "Canada", 43.6532, -79.3832},
	{"Mexico City", "Mexico", 19.4326, -99.1332},
	{"Sao Paulo", "Brazil", -23.5505, -46.6333},
	{"Buenos Aires", "Argentina", -34.6037, -58.3816},
	{"London", "United Kingdom", 51.5072, -0.1276},
	{"Paris", "France", 48.8566, 2.3522},
	{"Berlin", "Germany", 52.5200, 13.4050},
	{"Madrid", "Spain", 40.4168, -3.7038},
	{"Rome", "Italy", 41.9028, 12.4964},
	{"Amsterdam", "Netherlands", 52.3676, 4.9041},
	{"Warsaw", "Poland", 52.2297, 21.0122},
	{"Stockholm", "Sweden", 59.3293, 18.0686},
	{"Moscow", "Russia", 55.7558, 37.6173},
	{"Istanbul", "Turkey", 41.0082, 28.9784},
	{"Cairo", "Egypt", 30.0444, 31.2357},
	{"Nairobi", "Kenya", -1.2921, 36.8219},
	{"Johannesburg", "South Africa", -26.2041, 28.0473},
	{"Lagos", "Nigeria", 6.5244, 3.3792},
	{"Dubai", "United Arab Emirates", 25.2048, 55.2708},
	{"Mumbai", "India", 19.0760, 72.8777},
	{"New Delhi", "India", 28.6139, 77.2090},
	{"Bangkok", "Thailand", 13.7563, 100.5018},
	{"Singapore", "Singapore", 1.3521, 103.8198},
	{"Jakarta", "Indonesia", -6.2088, 106.8456},
	{"Hong Kong", "China", 22.3193, 114.1694},
	{"Shanghai", "China", 31.2304, 121.4737},
	{"Beijing", "China", 39.9042, 116.4074},
	{"Seoul", "South Korea", 37.5665, 126.9780},
	{"Tokyo", "Japan", 35.6762, 139.6503},
	{"Sydney", "Australia", -33.8688, 151.2093},
	{"Melbourne", "Australia", -37.8136, 144.9631},
	{"Auckland", "New Zealand", -36.8509, 174.7645},
	{"Reykjavik", "Iceland", 64.1466, -21.9426},
	{"Anchorage", "United States", 61.2181, -149.9003},
	{"Tromso", "Norway", 69.6492, 18.9553},
	{"Ushuaia", "Argentina", -54.8019, -68.3030},
}
