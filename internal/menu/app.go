package menu

import (
	"context"
	"errors"

	"github.com/vsynytsia/clothing-shop/internal/auth"
	"github.com/vsynytsia/clothing-shop/internal/catalog"
	"github.com/vsynytsia/clothing-shop/internal/checkout"
	"github.com/vsynytsia/clothing-shop/internal/domain"
)

// App wires the interactive interface to the services behind it.
type App struct {
	p        *Prompter
	auth     *auth.Service
	catalog  *catalog.Service
	checkout *checkout.Service
	orders   OrderManager
	users    UserAdmin
}

func NewApp(p *Prompter, authSvc *auth.Service, catalogSvc *catalog.Service,
	checkoutSvc *checkout.Service, orders OrderManager, users UserAdmin) *App {
	return &App{
		p:        p,
		auth:     authSvc,
		catalog:  catalogSvc,
		checkout: checkoutSvc,
		orders:   orders,
		users:    users,
	}
}

// Run drives the whole interface: the guest dialog until someone signs in,
// then the menu tree for that user's role, looping back to the guest dialog
// on "switch users". A closed input stream ends the application cleanly.
func (a *App) Run(ctx context.Context) error {
	for {
		user, err := a.runGuest(ctx)
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}
		if user == nil {
			a.p.Info("Goodbye!")
			return nil
		}

		sess := NewSession(user)

		var switchUser bool
		switch user.RoleID {
		case domain.RoleAdmin:
			switchUser, err = a.runAdmin(ctx, sess)
		case domain.RoleWorker:
			switchUser, err = a.runWorker(ctx, sess)
		default:
			switchUser, err = a.runCustomer(ctx, sess)
		}
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}
		if !switchUser {
			a.p.Info("Goodbye!")
			return nil
		}
	}
}

// idCheck validates that the entered number is one of the listed ids.
func idCheck(ids []int64, msg string) IntCheck {
	return IntCheck{
		OK: func(n int) bool {
			for _, id := range ids {
				if id == int64(n) {
					return true
				}
			}
			return false
		},
		Msg: msg,
	}
}
