package dto

type CalculateResponse struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}
