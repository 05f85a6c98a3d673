package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ComponentRequest is one independently taxed part of a mixed item.
type ComponentRequest struct {
	Label       string  `json:"label" example:"Hot Food"`
	GrossAmount string  `json:"gross_amount" example:"15.00"`
	VATRate     *string `json:"vat_rate" example:"20"`
	IsVATExempt bool    `json:"is_vat_exempt" example:"false"`
}

// CreateMenuItemRequest represents the create menu item request body.
type CreateMenuItemRequest struct {
	Name        string             `json:"name" binding:"required" example:"Chicken Biryani Meal"`
	Price       string             `json:"price" example:"20.00"`
	VATRate     *string            `json:"vat_rate" example:"20"`
	IsVATExempt bool               `json:"is_vat_exempt" example:"false"`
	VATType     string             `json:"vat_type" enums:"simple,mixed" example:"mixed"`
	Components  []ComponentRequest `json:"components"`
}

// UpdateMenuItemRequest represents the update menu item request body. Omitted fields are unchanged.
type UpdateMenuItemRequest struct {
	Name        *string             `json:"name" example:"Lamb Biryani Meal"`
	Price       *string             `json:"price" example:"21.50"`
	VATRate     *string             `json:"vat_rate" example:"0"`
	IsVATExempt *bool               `json:"is_vat_exempt"`
	VATType     *string             `json:"vat_type" enums:"simple,mixed"`
	Components  *[]ComponentRequest `json:"components"`
}

// UpdateSettingsRequest represents the update settings request body.
type UpdateSettingsRequest struct {
	CurrencySymbol *string `json:"currency_symbol" example:"£"`
	Timezone       *string `json:"timezone" example:"Europe/London"`
}
