package model

// Coin is static catalog data describing a withdrawable currency.
type Coin struct {
	Symbol        string
	Name          string
	MinWithdrawal float64
	MaxWithdrawal float64
	IconURL       string
	IsActive      bool
}

// DefaultCoins is the catalogue seeded into an empty coins table.
func DefaultCoins() []Coin {
	return []Coin{
		{Symbol: "BTC", Name: "Bitcoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/bitcoin-btc-logo.png", IsActive: true},
		{Symbol: "TRX", Name: "Tron", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/tron-trx-logo.png", IsActive: true},
		{Symbol: "USDT", Name: "Tether", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/tether-usdt-logo.png", IsActive: true},
		{Symbol: "TON", Name: "Toncoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/toncoin-ton-logo.png", IsActive: true},
		{Symbol: "DOGE", Name: "Dogecoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/dogecoin-doge-logo.png", IsActive: true},
		{Symbol: "LTC", Name: "Litecoin", MinWithdrawal: 100, MaxWithdrawal: 10000, IconURL: "https://cryptologos.cc/logos/litecoin-ltc-logo.png", IsActive: true},
	}
}
