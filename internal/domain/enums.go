package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// VATType distinguishes single-rate items from composite items whose parts are taxed separately.
type VATType string

const (
	VATTypeSimple VATType = "simple"
	VATTypeMixed  VATType = "mixed"
)

// ValidVATTypes lists the accepted VAT types.
var ValidVATTypes = map[VATType]bool{
	VATTypeSimple: true,
	VATTypeMixed:  true,
}

// OrderSource is the sales channel an order came through.
type OrderSource string

const (
	OrderSourceOnline       OrderSource = "online"
	OrderSourceInRestaurant OrderSource = "in_restaurant"
)

// ValidOrderSources lists the accepted order sources.
var ValidOrderSources = map[OrderSource]bool{
	OrderSourceOnline:       true,
	OrderSourceInRestaurant: true,
}

// Label returns the report scope label for a source filter; the empty source means all channels.
func (s OrderSource) Label() string {
	if s == "" {
		return "all"
	}
	return string(s)
}
