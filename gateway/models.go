package gateway

import "time"

// Product is a catalog entry. Price is the decimal string the API
// serializes ("15000.00"); it is never parsed into a float client-side.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Image       *string `json:"image"`
}

// CartItem is one line in the active cart.
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the user's active cart. The API returns carts as a collection
// scoped to the authenticated user; the first element is the active one.
type Cart struct {
	ID        int64      `json:"id"`
	User      string     `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items"`
}

// OrderItem is a line of a placed order, with the price captured at
// checkout time.
type OrderItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    string  `json:"price"`
}

// Order is a placed order with its shipping and payment details.
type Order struct {
	ID             int64       `json:"id"`
	User           string      `json:"user"`
	CreatedAt      time.Time   `json:"created_at"`
	TotalPrice     string      `json:"total_price"`
	Items          []OrderItem `json:"items"`
	FullName       string      `json:"full_name"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	PostalCode     string      `json:"postal_code"`
	PaymentMethod  string      `json:"payment_method"`
	ShippingOption string      `json:"shipping_option"`
	ShippingCost   string      `json:"shipping_cost"`
}

// RegistrationForm carries the fields for account creation.
type RegistrationForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckoutForm carries the shipping and payment fields submitted at
// checkout. ShippingCost is sent as a plain number of the store's
// smallest currency unit, matching what the order endpoint expects.
type CheckoutForm struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	PaymentMethod  string `json:"payment_method"`
	ShippingOption string `json:"shipping_option"`
	ShippingCost   int64  `json:"shipping_cost"`
}
