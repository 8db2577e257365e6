// Package gazetteer holds the built-in place table used for offline
// suggestion matching and for seeding the places database.
package gazetteer

import "github.com/samirrijal/ridemap/internal/core/domain"

// Entries is the default gazetteer, in declaration order. Order matters:
// suggestion ties are broken by position in this slice. Short aliases
// absorb truncated typing and the common typos seen in search logs.
var Entries = []domain.Place{
	{Label: "Reem Island, Abu Dhabi, UAE", Aliases: []string{"reem island", "reem", "rem", "riim", "rim"}, Coordinate: domain.GeoPoint{Lat: 24.4991, Lng: 54.4017}},
	{Label: "Reem Mall, Reem Island, Abu Dhabi, UAE", Aliases: []string{"reem mall"}, Coordinate: domain.GeoPoint{Lat: 24.5038, Lng: 54.4066}},
	{Label: "Reem Village, Reem Island, Abu Dhabi, UAE", Aliases: []string{"reem village"}, Coordinate: domain.GeoPoint{Lat: 24.4924, Lng: 54.3972}},
	{Label: "Abu Dhabi, UAE", Aliases: []string{"abu dhabi", "abu", "dbu", "abo", "dhabi", "dha"}, Coordinate: domain.GeoPoint{Lat: 24.4539, Lng: 54.3773}},
	{Label: "Abu Dhabi Corniche, Abu Dhabi, UAE", Aliases: []string{"abu dhabi corniche", "corniche"}, Coordinate: domain.GeoPoint{Lat: 24.4672, Lng: 54.3567}},
	{Label: "Abu Dhabi Mall, Abu Dhabi, UAE", Aliases: []string{"abu dhabi mall"}, Coordinate: domain.GeoPoint{Lat: 24.4979, Lng: 54.3809}},
	{Label: "Sheikh Zayed Grand Mosque, Abu Dhabi, UAE", Aliases: []string{"sheikh zayed grand mosque", "zayed mosque", "grand mosque"}, Coordinate: domain.GeoPoint{Lat: 24.4128, Lng: 54.4750}},
	{Label: "Dubai, UAE", Aliases: []string{"dubai", "dubei", "duabi", "dubi"}, Coordinate: domain.GeoPoint{Lat: 25.2048, Lng: 55.2708}},
	{Label: "Dubai Mall, Dubai, UAE", Aliases: []string{"dubai mall"}, Coordinate: domain.GeoPoint{Lat: 25.1972, Lng: 55.2744}},
	{Label: "Burj Khalifa, Dubai, UAE", Aliases: []string{"burj khalifa", "burj"}, Coordinate: domain.GeoPoint{Lat: 25.1972, Lng: 55.2740}},
	{Label: "Dubai Marina, Dubai, UAE", Aliases: []string{"dubai marina", "marina"}, Coordinate: domain.GeoPoint{Lat: 25.0763, Lng: 55.1304}},
	{Label: "Saadiyat Island, Abu Dhabi, UAE", Aliases: []string{"saadiyat island", "saadiyat", "sadiyat"}, Coordinate: domain.GeoPoint{Lat: 24.5456, Lng: 54.4218}},
	{Label: "Saadiyat Beach, Abu Dhabi, UAE", Aliases: []string{"saadiyat beach"}, Coordinate: domain.GeoPoint{Lat: 24.5476, Lng: 54.4232}},
	{Label: "Louvre Abu Dhabi, Saadiyat Island, UAE", Aliases: []string{"louvre abu dhabi", "louvre"}, Coordinate: domain.GeoPoint{Lat: 24.5366, Lng: 54.3984}},
	{Label: "Yas Island, Abu Dhabi, UAE", Aliases: []string{"yas island", "yas"}, Coordinate: domain.GeoPoint{Lat: 24.4959, Lng: 54.6056}},
	{Label: "Yas Mall, Abu Dhabi, UAE", Aliases: []string{"yas mall"}, Coordinate: domain.GeoPoint{Lat: 24.4913, Lng: 54.6068}},
	{Label: "Ferrari World, Yas Island, Abu Dhabi, UAE", Aliases: []string{"ferrari world", "ferrari"}, Coordinate: domain.GeoPoint{Lat: 24.4831, Lng: 54.6036}},
	{Label: "Beijing, China", Aliases: []string{"beijing", "china", "chna"}, Coordinate: domain.GeoPoint{Lat: 39.9042, Lng: 116.4074}},
	{Label: "Shanghai, China", Aliases: []string{"shanghai"}, Coordinate: domain.GeoPoint{Lat: 31.2304, Lng: 121.4737}},
	{Label: "Hong Kong, China", Aliases: []string{"hong kong"}, Coordinate: domain.GeoPoint{Lat: 22.3193, Lng: 114.1694}},
	{Label: "Atlanta, Georgia, USA", Aliases: []string{"atlanta"}, Coordinate: domain.GeoPoint{Lat: 33.7490, Lng: -84.3880}},
	{Label: "Boston, Massachusetts, USA", Aliases: []string{"boston"}, Coordinate: domain.GeoPoint{Lat: 42.3601, Lng: -71.0589}},
	{Label: "Chicago, Illinois, USA", Aliases: []string{"chicago"}, Coordinate: domain.GeoPoint{Lat: 41.8781, Lng: -87.6298}},
	{Label: "Delhi, India", Aliases: []string{"delhi"}, Coordinate: domain.GeoPoint{Lat: 28.7041, Lng: 77.1025}},
	{Label: "Frankfurt, Germany", Aliases: []string{"frankfurt"}, Coordinate: domain.GeoPoint{Lat: 50.1109, Lng: 8.6821}},
	{Label: "London, UK", Aliases: []string{"london"}, Coordinate: domain.GeoPoint{Lat: 51.5074, Lng: -0.1278}},
	{Label: "New York, USA", Aliases: []string{"new york"}, Coordinate: domain.GeoPoint{Lat: 40.7128, Lng: -74.0060}},
	{Label: "Tokyo, Japan", Aliases: []string{"tokyo"}, Coordinate: domain.GeoPoint{Lat: 35.6762, Lng: 139.6503}},
}

// Defaults are the globally-known fallback suggestions returned when
// neither the gazetteer nor a remote geocoder produced a match.
var Defaults = []domain.Suggestion{
	{Label: "London, UK", Coordinate: domain.GeoPoint{Lat: 51.5074, Lng: -0.1278}},
	{Label: "New York, USA", Coordinate: domain.GeoPoint{Lat: 40.7128, Lng: -74.0060}},
	{Label: "Tokyo, Japan", Coordinate: domain.GeoPoint{Lat: 35.6762, Lng: 139.6503}},
}

func init() {
	for i := range Entries {
		Entries[i].Rank = i
	}
}
