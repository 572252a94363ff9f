package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ChargeKind identifies which rate tier table a charge is looked up from
type ChargeKind int

const (
	ChargeKindPackagingForwarding ChargeKind = 0
	ChargeKindPrinting            ChargeKind = 1
	ChargeKindTax                 ChargeKind = 2
)

func (k ChargeKind) String() string {
	names := [...]string{"packaging_forwarding", "printing", "tax"}
	if int(k) < 0 || int(k) >= len(names) {
		return "packaging_forwarding"
	}
	return names[k]
}

// IsPercentage reports whether tiers of this kind carry a percentage rate
// rather than a per-unit cost
func (k ChargeKind) IsPercentage() bool {
	return k == ChargeKindTax
}

// ParseChargeKind parses a charge kind from its string form (route params,
// request bodies)
func ParseChargeKind(s string) (ChargeKind, error) {
	switch s {
	case "packaging_forwarding", "packaging-forwarding":
		return ChargeKindPackagingForwarding, nil
	case "printing":
		return ChargeKindPrinting, nil
	case "tax":
		return ChargeKindTax, nil
	}
	return 0, fmt.Errorf("unknown charge kind %q", s)
}

func (k ChargeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ChargeKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ChargeKind(i)
		return nil
	}
	parsed, err := ParseChargeKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k ChargeKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *ChargeKind) Scan(value interface{}) error {
	if value == nil {
		*k = ChargeKindPackagingForwarding
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = ChargeKind(v)
	case int:
		*k = ChargeKind(v)
	}
	return nil
}
