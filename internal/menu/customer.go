package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vsynytsia/clothing-shop/internal/checkout"
	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

// runCustomer drives the customer main menu. It reports whether the user
// asked to switch accounts rather than leave the application.
func (a *App) runCustomer(ctx context.Context, sess *Session) (bool, error) {
	menu := fmt.Sprintf(`Welcome, %s! What would you like to do?
1) View available clothes
2) View my basket
3) View my orders
4) Switch users
5) Exit`, sess.User.FirstName)

	for {
		choice, err := a.p.Choice(menu, 1, 2, 3, 4, 5)
		if err != nil {
			return false, err
		}

		switch choice {
		case 1:
			err = a.shop(ctx, sess)
		case 2:
			err = a.basketMenu(ctx, sess)
		case 3:
			err = a.myOrders(ctx, sess)
		case 4:
			return true, nil
		case 5:
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func (a *App) shop(ctx context.Context, sess *Session) error {
	for {
		items, err := a.catalog.ListItems(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			a.p.Warn("No clothes available yet. Come back later!")
			_, err := a.p.Choice("1) Back to main menu", 1)
			return err
		}

		a.p.Say("%s", renderItems(items))
		choice, err := a.p.Choice(`1) Add item to basket
2) View my basket
3) Back to main menu`, 1, 2, 3)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			backToMain, err := a.addToBasket(ctx, sess, items)
			if err != nil {
				return err
			}
			if backToMain {
				return nil
			}
		case 2:
			return a.basketMenu(ctx, sess)
		case 3:
			return nil
		}
	}
}

// addToBasket runs the pick-item/pick-quantity dialog and the short menu
// shown after a successful add. It reports whether the customer wants to go
// back to the main menu.
func (a *App) addToBasket(ctx context.Context, sess *Session, items []*domain.CatalogItem) (bool, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	id, err := a.p.Int("item id",
		idCheck(ids, "There is no item with this id. Please, try again!"))
	if err != nil {
		return false, err
	}

	item, err := a.catalog.GetItem(ctx, int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			a.p.Fail("This item is no longer sold. Please, try again!")
			return false, nil
		}
		return false, err
	}

	inBasket := sess.Basket.InBasketQuantity(item.ID)
	left := item.InStock - inBasket
	if left <= 0 {
		a.p.Fail("Sorry, there are no more %q in stock right now.", item.Title)
		return false, nil
	}

	quantity, err := a.p.Int("quantity",
		IntCheck{OK: func(n int) bool { return n > 0 }, Msg: "Quantity must be positive. Please, try again!"},
		IntCheck{OK: func(n int) bool { return n <= left }, Msg: fmt.Sprintf("Only %d left in stock. Please, try again!", left)})
	if err != nil {
		return false, err
	}

	if err := sess.Basket.Add(item, quantity); err != nil {
		a.p.Fail("Could not add the item to your basket: %v", err)
		return false, nil
	}

	a.p.Success("Added %d x %q to your basket.", quantity, item.Title)
	a.p.Say("%s", renderBasket(sess.Basket.Lines()))

	choice, err := a.p.Choice(`1) Continue shopping
2) Checkout
3) Back to main menu`, 1, 2, 3)
	if err != nil {
		return false, err
	}

	switch choice {
	case 2:
		placed, err := a.checkoutFlow(ctx, sess)
		return placed, err
	case 3:
		return true, nil
	}
	return false, nil
}

func (a *App) basketMenu(ctx context.Context, sess *Session) error {
	for {
		if sess.Basket.Len() == 0 {
			a.p.Warn("Your basket is empty. Start shopping!")
			_, err := a.p.Choice("1) Back to main menu", 1)
			return err
		}

		a.p.Say("%s", renderBasket(sess.Basket.Lines()))
		a.p.Say("Basket total: %.2f", sess.Basket.Total())

		choice, err := a.p.Choice(`1) Back to main menu
2) Remove item from basket
3) Clear basket
4) Checkout`, 1, 2, 3, 4)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			return nil
		case 2:
			if err := a.removeFromBasket(sess); err != nil {
				return err
			}
		case 3:
			sess.Basket.Clear()
			a.p.Info("Your basket is empty now.")
		case 4:
			placed, err := a.checkoutFlow(ctx, sess)
			if err != nil {
				return err
			}
			if placed {
				return nil
			}
		}
	}
}

func (a *App) removeFromBasket(sess *Session) error {
	id, err := a.p.Int("item id",
		IntCheck{
			OK: func(n int) bool {
				_, ok := sess.Basket.LineByItemID(int64(n))
				return ok
			},
			Msg: "There is no item with this id in your basket. Please, try again!",
		})
	if err != nil {
		return err
	}

	line, _ := sess.Basket.LineByItemID(int64(id))
	amount, err := a.p.Int("amount to remove",
		IntCheck{OK: func(n int) bool { return n > 0 }, Msg: "Amount must be positive. Please, try again!"},
		IntCheck{OK: func(n int) bool { return n <= line.Quantity }, Msg: fmt.Sprintf("You only have %d of this item in your basket. Please, try again!", line.Quantity)})
	if err != nil {
		return err
	}

	if err := sess.Basket.RemoveSingle(int64(id), amount); err != nil {
		a.p.Fail("Could not remove the item: %v", err)
		return nil
	}

	a.p.Success("Removed %d x %q from your basket.", amount, line.Title)
	return nil
}

// checkoutFlow shows the basket one last time, asks for confirmation and
// places the order. It reports whether an order was actually placed.
func (a *App) checkoutFlow(ctx context.Context, sess *Session) (bool, error) {
	a.p.Say("%s", renderBasket(sess.Basket.Lines()))
	a.p.Say("Basket total: %.2f", sess.Basket.Total())

	choice, err := a.p.Choice(`1) Confirm order
2) Back`, 1, 2)
	if err != nil {
		return false, err
	}
	if choice == 2 {
		return false, nil
	}

	// The basket is cleared on success, so grab the lines up front to
	// invalidate cached stock counts afterwards.
	lines := sess.Basket.Lines()

	orderID, err := a.checkout.PlaceOrder(ctx, sess.Basket, sess.User.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyBasket):
			a.p.Warn("Your basket is empty, nothing to checkout.")
		case errors.Is(err, repository.ErrInsufficientStock):
			a.p.Fail("Somebody beat you to it and there is not enough stock anymore. Review your basket and try again!")
		case errors.Is(err, repository.ErrItemNotFound):
			a.p.Fail("Some items in your basket are no longer sold. Review your basket and try again!")
		default:
			return false, err
		}
		return false, nil
	}

	for _, line := range lines {
		a.catalog.InvalidateItem(line.ItemID)
	}

	a.p.Info("Thank you for your order! Order #%d is registered, our manager will contact you very soon.", orderID)
	return true, nil
}

func (a *App) myOrders(ctx context.Context, sess *Session) error {
	for {
		orders, err := a.orders.ListUserOrders(ctx, sess.User.ID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			a.p.Warn("You have no orders yet.")
			_, err := a.p.Choice("1) Back to main menu", 1)
			return err
		}

		a.p.Say("%s", renderOrderSummaries(orders))
		choice, err := a.p.Choice(`1) View specific order
2) Back to main menu`, 1, 2)
		if err != nil {
			return err
		}
		if choice == 2 {
			return nil
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		if err := a.viewOrder(ctx, ids); err != nil {
			return err
		}
	}
}

func (a *App) viewOrder(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("order id",
		idCheck(ids, "There is no order with this id. Please, try again!"))
	if err != nil {
		return err
	}

	details, err := a.orders.GetOrderDetails(ctx, int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			a.p.Fail("There is no order with this id. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Say("%s", renderOrderDetails(details))
	_, err = a.p.Choice("1) Back", 1)
	return err
}
