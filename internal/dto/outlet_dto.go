package dto

// OutletImportDTO is one store entry as it appears in the scraped outlets
// JSON consumed by the seeder.
type OutletImportDTO struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Area         string `json:"area"`
	State        string `json:"state"`
	OpeningTime  string `json:"opening_time"`
	ClosingTime  string `json:"closing_time"`
	DirectionUrl string `json:"direction_url"`
}

type OutletQueryResponse struct {
	Query        string                   `json:"query"`
	Sql          string                   `json:"sql"`
	Results      []map[string]interface{} `json:"results"`
	TotalResults int                      `json:"total_results"`
}
