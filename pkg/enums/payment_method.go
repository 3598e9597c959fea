package enums

import "fmt"

// PaymentMethod tags an order with the gateway the buyer selected. The client
// never talks to the gateways themselves; the tag is forwarded to the backend.
type PaymentMethod string

const (
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodRazorpay     PaymentMethod = "razorpay"
	PaymentMethodCrypto       PaymentMethod = "crypto"
	PaymentMethodWesternUnion PaymentMethod = "western_union"
	PaymentMethodManual       PaymentMethod = "manual"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPayPal,
	PaymentMethodStripe,
	PaymentMethodRazorpay,
	PaymentMethodCrypto,
	PaymentMethodWesternUnion,
	PaymentMethodManual,
}

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsManual reports whether the method settles outside a gateway and needs a
// payment reference submitted after placement.
func (p PaymentMethod) IsManual() bool {
	switch p {
	case PaymentMethodCrypto, PaymentMethodWesternUnion, PaymentMethodManual:
		return true
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
