package menu

import (
	"context"

	"github.com/vsynytsia/clothing-shop/internal/basket"
	"github.com/vsynytsia/clothing-shop/internal/domain"
)

// Session carries the signed-in user and their basket through the menu tree.
// There is no global state: every flow receives the session it operates on.
type Session struct {
	User   *domain.User
	Basket *basket.Basket
}

func NewSession(user *domain.User) *Session {
	return &Session{
		User:   user,
		Basket: basket.New(),
	}
}

// OrderBrowser lists a user's own orders.
type OrderBrowser interface {
	ListUserOrders(ctx context.Context, userID int64) ([]*domain.OrderSummary, error)
	GetOrderDetails(ctx context.Context, orderID int64) ([]*domain.OrderDetail, error)
}

// OrderManager is the worker surface over all orders.
type OrderManager interface {
	OrderBrowser
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

// UserAdmin is the admin surface over accounts.
type UserAdmin interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role domain.Role) error
	DeleteUser(ctx context.Context, userID int64) error
}
