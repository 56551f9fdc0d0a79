package dto

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MiningStatusResponse reports the current point balance.
type MiningStatusResponse struct {
	Status  string  `json:"status"`
	Balance float64 `json:"balance"`
}

// CollectResponse reports a mining reward credit.
type CollectResponse struct {
	Status     string  `json:"status"`
	Collected  float64 `json:"collected"`
	NewBalance float64 `json:"newBalance"`
}

// AdRewardResponse reports an ad-view reward credit.
type AdRewardResponse struct {
	Status     string  `json:"status"`
	Reward     float64 `json:"reward"`
	NewBalance float64 `json:"newBalance"`
}

// ReferralStatsResponse carries referral program numbers.
type ReferralStatsResponse struct {
	Status    string  `json:"status"`
	Referrals int     `json:"referrals"`
	Earnings  float64 `json:"earnings"`
	Link      string  `json:"link"`
}
