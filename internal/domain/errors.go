package domain

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrOrderNotFound  = errors.New("order not found")
	ErrItemNotFound   = errors.New("menu item not found")
	ErrDuplicateItem  = errors.New("a menu item with this name already exists")
	ErrInvalidItem    = errors.New("menu item name is required")
	ErrUploadFailed   = errors.New("report upload to storage failed")
	ErrNoCustomerMail = errors.New("order has no customer email")

	// VAT configuration errors are surfaced to the admin at item save time.
	ErrVATRateUnset          = errors.New("VAT rate must be chosen before the item can be sold")
	ErrVATRateInvalid        = errors.New("VAT rate must be between 0 and 100 percent")
	ErrInvalidVATType        = errors.New("VAT type must be simple or mixed")
	ErrInvalidPrice          = errors.New("price must not be negative")
	ErrMixedItemNoComponents = errors.New("mixed VAT item needs at least one component")
	ErrMixedItemUnreconciled = errors.New("mixed VAT item components do not add up to the item price")

	// Order resolution errors stay inside the report; one bad order never aborts it.
	ErrLineItemUnresolvable = errors.New("order line has no menu item to derive VAT from")

	ErrInvalidDateRange   = errors.New("invalid date range: 'to' must not be before 'from'")
	ErrInvalidOrderSource = errors.New("invalid order source: must be online or in_restaurant")
	ErrInvalidTimezone    = errors.New("invalid timezone: must be an IANA zone such as Europe/London")
	ErrInvalidCurrency    = errors.New("currency symbol must be 1 to 8 characters")
)
