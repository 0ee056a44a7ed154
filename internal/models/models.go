package models

import "time"

// Role values returned by the backend in login responses and user records.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Order status values. Transitions are server-authoritative; the client only
// requests them (checkout, cancel) and reconciles with the response.
const (
	StatusProcessing = "PROCESSING"
	StatusSent       = "SENT"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// Identity is the authenticated user as the session store keeps it: the
// fields of a successful login response. Token empty means anonymous.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"-"`
}

// IsAdmin reports whether the identity carries the administrative role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Products is only populated by the /categories/full listing.
	Products []Product `json:"products,omitempty"`
}

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Image         string    `json:"image"`
	Category      *Category `json:"category,omitempty"`
}

// OrderItem is one product-quantity pairing within an order. Price is the
// unit price quoted by the server when the item was added.
type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID         int         `json:"id"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
	FinalPrice float64     `json:"finalPrice,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ReviewID is the composite review key: at most one review per
// (user, product) pair.
type ReviewID struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
}

type Review struct {
	ID        ReviewID  `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      string `json:"reward,omitempty"`
}

// UnlockedAchievement is an achievement the server has granted to the user.
// Unlocks are append-only from the client's perspective.
type UnlockedAchievement struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	BonusUsed bool   `json:"bonusUsed"`
}

type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role,omitempty"`
	Blocked bool   `json:"blocked"`
}

// OrderStats is the admin dashboard payload of GET /admin/stats/orders.
type OrderStats struct {
	Processing int     `json:"processing"`
	Sent       int     `json:"sent"`
	Delivered  int     `json:"delivered"`
	Cancelled  int     `json:"cancelled"`
	TotalSales float64 `json:"totalSales"`
}
