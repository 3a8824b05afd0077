package gateway

import (
	"context"

	"github.com/desistore/storefront/internal/domain"
)

// UserRole is the caller's role as reported by the commerce backend.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

// UserProfile is the caller's editable profile.
type UserProfile struct {
	Name string `json:"name"`
}

// Gateway is the typed RPC contract to the commerce backend. Every call
// is an RPC invocation, not a REST endpoint: failures arrive as
// structured error payloads rather than bare status codes.
//
// Caller identity travels implicitly with the context; implementations
// attach it to the outgoing request.
type Gateway interface {
	// Cart
	GetCart(ctx context.Context) ([]domain.CartLine, error)
	AddItemToCart(ctx context.Context, productID, quantity int64) error
	UpdateCartItem(ctx context.Context, productID, quantity int64) error
	RemoveCartItem(ctx context.Context, productID int64) error
	ClearCart(ctx context.Context) error

	// Catalog
	ListAllProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	GetSupportedCategories(ctx context.Context) ([]string, error)

	// Orders
	PlaceOrder(ctx context.Context, shippingAddress string, method domain.PaymentMethod, country string) (int64, error)
	ListMyOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)

	// Admin catalog
	AddProduct(ctx context.Context, in domain.ProductInput) (int64, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) error
	UpdateStock(ctx context.Context, productID, stock int64) error

	// Identity
	GetCallerUserRole(ctx context.Context) (UserRole, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	GetCallerUserProfile(ctx context.Context) (UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, p UserProfile) error
}
