package dto

type ProductHitDTO struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           string   `json:"price"`
	Promotion       string   `json:"promotion,omitempty"`
	Colours         []string `json:"colours,omitempty"`
	SimilarityScore float64  `json:"similarity_score"`
}

// ProductImportDTO is one catalog entry as it appears in the scraped
// products JSON consumed by the seeder and the indexer.
type ProductImportDTO struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Promotion   string   `json:"promotion"`
	Colours     []string `json:"colours"`
}

type ProductQueryResponse struct {
	Query        string          `json:"query"`
	Summary      string          `json:"summary"`
	Products     []ProductHitDTO `json:"products"`
	TotalResults int             `json:"total_results"`
}
