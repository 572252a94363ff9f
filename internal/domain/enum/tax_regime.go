package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxRegime identifies which GST regime applies to an order.
// Intrastate and Interstate are domestic regimes split on whether the buyer
// shares the seller's registered state; International covers everything not
// verifiably Indian.
type TaxRegime int

const (
	TaxRegimeIntrastate    TaxRegime = 0
	TaxRegimeInterstate    TaxRegime = 1
	TaxRegimeInternational TaxRegime = 2
)

func (t TaxRegime) String() string {
	names := [...]string{"intrastate", "interstate", "international"}
	if int(t) < 0 || int(t) >= len(names) {
		return "international"
	}
	return names[t]
}

// Domestic reports whether the regime is a GST-component regime
func (t TaxRegime) Domestic() bool {
	return t == TaxRegimeIntrastate || t == TaxRegimeInterstate
}

func (t TaxRegime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxRegime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxRegime(i)
		return nil
	}
	switch str {
	case "intrastate":
		*t = TaxRegimeIntrastate
	case "interstate":
		*t = TaxRegimeInterstate
	case "international":
		*t = TaxRegimeInternational
	}
	return nil
}

func (t TaxRegime) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxRegime) Scan(value interface{}) error {
	if value == nil {
		*t = TaxRegimeInternational
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxRegime(v)
	case int:
		*t = TaxRegime(v)
	}
	return nil
}
