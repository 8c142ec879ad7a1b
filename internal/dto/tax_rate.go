package dto

// TaxRateResponse shows a rate in both representations.
type TaxRateResponse struct {
	Rate    string `json:"rate"`
	Display string `json:"display"`
}
