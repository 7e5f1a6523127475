package dto

// TipLinkResponse is the UPI deep link for tipping a worker.
type TipLinkResponse struct {
	WorkerID string `json:"workerId"`
	Name     string `json:"name"`
	UpiID    string `json:"upiId"`
	Amount   string `json:"amount,omitempty"`
	Link     string `json:"link"`
}
