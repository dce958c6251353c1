package dto

type StationResponse struct {
	StationID string   `json:"station_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Location  Location `json:"location"`
	Price     float64  `json:"price"`
}

type ListStationsResponse struct {
	Count    int               `json:"count"`
	Stations []StationResponse `json:"stations"`
}

type ReloadStationsResponse struct {
	Stations int `json:"stations"`
	Skipped  int `json:"skipped"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
}
