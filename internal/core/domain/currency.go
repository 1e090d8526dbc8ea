package domain

// Country is one row of the country/currency reference table.
type Country struct {
	Code      string `json:"code"`      // ISO 3166 alpha-2, e.g. "GH"
	Name      string `json:"name"`      // e.g. "Ghana"
	Currency  string `json:"currency"`  // ISO 4217, e.g. "GHS"
	PhoneCode string `json:"phoneCode"` // e.g. "+233"
	Flag      string `json:"flag"`
	Symbol    string `json:"symbol"` // e.g. "₵"
	Region    Region `json:"region"`
}

// PaymentMethod is a way of paying in or out money.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
