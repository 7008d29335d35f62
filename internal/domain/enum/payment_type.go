package enum

import (
	"encoding/json"
	"strings"
)

// PaymentType represents how a sale was settled at the till
type PaymentType int

const (
	PaymentTypeCard PaymentType = 0
	PaymentTypeCash PaymentType = 1
)

func (p PaymentType) String() string {
	switch p {
	case PaymentTypeCard:
		return "Card"
	case PaymentTypeCash:
		return "Cash"
	}
	return "Unknown"
}

// IsValid reports whether p is a known payment type
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeCard || p == PaymentTypeCash
}

// ParsePaymentType accepts "card"/"cash" in any case
func ParsePaymentType(s string) (PaymentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return PaymentTypeCard, true
	case "cash":
		return PaymentTypeCash, true
	}
	return 0, false
}

func (p PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentType(i)
		return nil
	}
	if parsed, ok := ParsePaymentType(str); ok {
		*p = parsed
		return nil
	}
	*p = PaymentType(-1)
	return nil
}
