package enums

import "fmt"

// CartWarningReason enumerates non-fatal issues reported by cart merges.
type CartWarningReason string

const (
	CartWarningReasonOutOfStock      CartWarningReason = "out_of_stock"
	CartWarningReasonVariantNotFound CartWarningReason = "variant_not_found"
)

var validCartWarningReasons = []CartWarningReason{
	CartWarningReasonOutOfStock,
	CartWarningReasonVariantNotFound,
}

// String implements fmt.Stringer.
func (c CartWarningReason) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c CartWarningReason) IsValid() bool {
	for _, candidate := range validCartWarningReasons {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartWarningReason converts raw input into a CartWarningReason.
func ParseCartWarningReason(value string) (CartWarningReason, error) {
	for _, candidate := range validCartWarningReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart warning reason %q", value)
}
