package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppSettings are the operator preferences kept across restarts.
type AppSettings struct {
	AutoRefresh     bool            `json:"autoRefresh"`
	RefreshInterval Duration        `json:"refreshInterval"`
	DefaultFeeRate  decimal.Decimal `json:"defaultFeeRate"`
}

// Duration is a time.Duration that round-trips through JSON as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Operator is a back-office user allowed to drive wizards and update transactions.
type Operator struct {
	OperatorID   string `json:"operatorID"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
}
