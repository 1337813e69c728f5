package transit

import "fmt"

// Position is a WGS84 coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Position) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lon)
}

// Entrance is a station entrance returned by a radius search.
type Entrance struct {
	ID           string  `json:"ID"`
	Name         string  `json:"Name"`
	StationCode1 string  `json:"StationCode1"`
	StationCode2 string  `json:"StationCode2"`
	Lat          float64 `json:"Lat"`
	Lon          float64 `json:"Lon"`
}

type entrancesResponse struct {
	Entrances []Entrance `json:"Entrances"`
}

// Train is one row of a station's arrival board.
type Train struct {
	Car             string `json:"Car"`
	Destination     string `json:"Destination"`
	DestinationName string `json:"DestinationName"`
	Group           string `json:"Group"`
	Line            string `json:"Line"`
	LocationCode    string `json:"LocationCode"`
	LocationName    string `json:"LocationName"`
	Min             string `json:"Min"`
}

// Boarding reports whether the train is at the platform.
func (t Train) Boarding() bool { return t.Min == "BRD" }

// Arriving reports whether the train is pulling in.
func (t Train) Arriving() bool { return t.Min == "ARR" }

type predictionsResponse struct {
	Trains []Train `json:"Trains"`
}

// Station is a rail station.
type Station struct {
	Code      string  `json:"Code"`
	Name      string  `json:"Name"`
	LineCode1 string  `json:"LineCode1"`
	Lat       float64 `json:"Lat"`
	Lon       float64 `json:"Lon"`
}

type stationsResponse struct {
	Stations []Station `json:"Stations"`
}
