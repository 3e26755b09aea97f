package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

// runWorker drives the worker main menu: everything a customer can do plus
// order, catalog and item type management.
func (a *App) runWorker(ctx context.Context, sess *Session) (bool, error) {
	menu := fmt.Sprintf(`Welcome, %s! What would you like to do?
1) Manage orders
2) Manage clothes
3) Manage clothes types
4) View available clothes
5) View my basket
6) View my orders
7) Switch users
8) Exit`, sess.User.FirstName)

	for {
		choice, err := a.p.Choice(menu, 1, 2, 3, 4, 5, 6, 7, 8)
		if err != nil {
			return false, err
		}

		switch choice {
		case 1:
			err = a.manageOrders(ctx)
		case 2:
			err = a.manageItems(ctx)
		case 3:
			err = a.manageItemTypes(ctx)
		case 4:
			err = a.shop(ctx, sess)
		case 5:
			err = a.basketMenu(ctx, sess)
		case 6:
			err = a.myOrders(ctx, sess)
		case 7:
			return true, nil
		case 8:
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func (a *App) manageOrders(ctx context.Context) error {
	for {
		orders, err := a.orders.ListOrders(ctx)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			a.p.Warn("No orders found. Please, try again later!")
			_, err := a.p.Choice("1) Back to main menu", 1)
			return err
		}

		a.p.Say("%s", renderOrders(orders))
		choice, err := a.p.Choice(`1) Change order status
2) View order details
3) Back to main menu`, 1, 2, 3)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}

		switch choice {
		case 1:
			if err := a.changeOrderStatus(ctx, ids); err != nil {
				return err
			}
		case 2:
			if err := a.viewOrder(ctx, ids); err != nil {
				return err
			}
		case 3:
			return nil
		}
	}
}

func (a *App) changeOrderStatus(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("order id",
		idCheck(ids, "There is no order with this id. Please, try again!"))
	if err != nil {
		return err
	}

	status, err := a.p.Choice(`Pick the new status:
1) registered
2) rejected
3) accepted
4) done`, 1, 2, 3, 4)
	if err != nil {
		return err
	}

	if err := a.orders.UpdateOrderStatus(ctx, int64(id), domain.OrderStatus(status)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			a.p.Fail("There is no order with this id. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Success("Order #%d is now %s.", id, domain.OrderStatus(status))
	return nil
}

func (a *App) manageItems(ctx context.Context) error {
	for {
		items, err := a.catalog.ListItems(ctx)
		if err != nil {
			return err
		}

		var choice int
		if len(items) == 0 {
			a.p.Warn("No clothes in the catalog yet.")
			choice, err = a.p.Choice(`1) Add item
2) Back to main menu`, 1, 2)
			if err != nil {
				return err
			}
			if choice == 2 {
				return nil
			}
		} else {
			a.p.Say("%s", renderItems(items))
			choice, err = a.p.Choice(`1) Add item
2) Edit item
3) Restock item
4) Remove item
5) Back to main menu`, 1, 2, 3, 4, 5)
			if err != nil {
				return err
			}
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}

		switch choice {
		case 1:
			err = a.addItem(ctx)
		case 2:
			err = a.editItem(ctx, ids)
		case 3:
			err = a.restockItem(ctx, ids)
		case 4:
			err = a.removeItem(ctx, ids)
		case 5:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) addItem(ctx context.Context) error {
	types, err := a.catalog.ListItemTypes(ctx)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		a.p.Fail("There are no clothes types yet. Add one first!")
		return nil
	}

	a.p.Say("%s", renderItemTypes(types))
	typeIDs := make([]int64, 0, len(types))
	for _, t := range types {
		typeIDs = append(typeIDs, t.ID)
	}

	typeID, err := a.p.Int("clothes type id",
		idCheck(typeIDs, "There is no clothes type with this id. Please, try again!"))
	if err != nil {
		return err
	}

	item := &domain.CatalogItem{ItemTypeID: int64(typeID)}
	if item.Title, err = a.p.String("title"); err != nil {
		return err
	}
	if item.Description, err = a.p.String("description"); err != nil {
		return err
	}
	if item.Size, err = a.p.String("size"); err != nil {
		return err
	}
	if item.Material, err = a.p.String("material"); err != nil {
		return err
	}
	if item.Color, err = a.p.String("color"); err != nil {
		return err
	}
	if item.Price, err = a.p.Float("price", nonNegativePrice()); err != nil {
		return err
	}
	if item.Discount, err = a.p.Float("discount", validDiscount()); err != nil {
		return err
	}
	if item.InStock, err = a.p.Int("in stock quantity", nonNegativeQuantity()); err != nil {
		return err
	}

	id, err := a.catalog.AddItem(ctx, item)
	if err != nil {
		return err
	}

	a.p.Success("Added %q to the catalog with id %d.", item.Title, id)
	return nil
}

func (a *App) editItem(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("item id",
		idCheck(ids, "There is no item with this id. Please, try again!"))
	if err != nil {
		return err
	}

	item, err := a.catalog.GetItem(ctx, int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			a.p.Fail("There is no item with this id. Please, try again!")
			return nil
		}
		return err
	}

	field, err := a.p.Choice(`Pick the field to change:
1) title
2) description
3) size
4) material
5) color
6) price
7) discount`, 1, 2, 3, 4, 5, 6, 7)
	if err != nil {
		return err
	}

	switch field {
	case 1:
		item.Title, err = a.p.String("new title")
	case 2:
		item.Description, err = a.p.String("new description")
	case 3:
		item.Size, err = a.p.String("new size")
	case 4:
		item.Material, err = a.p.String("new material")
	case 5:
		item.Color, err = a.p.String("new color")
	case 6:
		item.Price, err = a.p.Float("new price", nonNegativePrice())
	case 7:
		item.Discount, err = a.p.Float("new discount", validDiscount())
	}
	if err != nil {
		return err
	}

	if err := a.catalog.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			a.p.Fail("There is no item with this id. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Success("Updated item with id %d.", id)
	return nil
}

func (a *App) restockItem(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("item id",
		idCheck(ids, "There is no item with this id. Please, try again!"))
	if err != nil {
		return err
	}

	quantity, err := a.p.Int("new in stock quantity", nonNegativeQuantity())
	if err != nil {
		return err
	}

	if err := a.catalog.Restock(ctx, int64(id), quantity); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			a.p.Fail("There is no item with this id. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Success("Item with id %d now has %d in stock.", id, quantity)
	return nil
}

func (a *App) removeItem(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("item id",
		idCheck(ids, "There is no item with this id. Please, try again!"))
	if err != nil {
		return err
	}

	if err := a.catalog.RemoveItem(ctx, int64(id)); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			a.p.Fail("There is no item with this id. Please, try again!")
			return nil
		}
		a.p.Fail("Could not remove the item: %v", err)
		return nil
	}

	a.p.Success("Removed item with id %d from the catalog.", id)
	return nil
}

func (a *App) manageItemTypes(ctx context.Context) error {
	for {
		types, err := a.catalog.ListItemTypes(ctx)
		if err != nil {
			return err
		}

		var choice int
		if len(types) == 0 {
			a.p.Warn("No clothes types yet.")
			choice, err = a.p.Choice(`1) Add clothes type
2) Back to main menu`, 1, 2)
			if err != nil {
				return err
			}
			if choice == 2 {
				return nil
			}
		} else {
			a.p.Say("%s", renderItemTypes(types))
			choice, err = a.p.Choice(`1) Add clothes type
2) Rename clothes type
3) Remove clothes type
4) Back to main menu`, 1, 2, 3, 4)
			if err != nil {
				return err
			}
		}

		ids := make([]int64, 0, len(types))
		for _, t := range types {
			ids = append(ids, t.ID)
		}

		switch choice {
		case 1:
			err = a.addItemType(ctx)
		case 2:
			err = a.renameItemType(ctx, ids)
		case 3:
			err = a.removeItemType(ctx, ids)
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) addItemType(ctx context.Context) error {
	name, err := a.p.String("clothes type name")
	if err != nil {
		return err
	}

	id, err := a.catalog.AddItemType(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateItemType) {
			a.p.Fail("A clothes type with this name already exists. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Success("Added clothes type %q with id %d.", name, id)
	return nil
}

func (a *App) renameItemType(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("clothes type id",
		idCheck(ids, "There is no clothes type with this id. Please, try again!"))
	if err != nil {
		return err
	}

	name, err := a.p.String("new name")
	if err != nil {
		return err
	}

	if err := a.catalog.RenameItemType(ctx, int64(id), name); err != nil {
		switch {
		case errors.Is(err, repository.ErrItemTypeNotFound):
			a.p.Fail("There is no clothes type with this id. Please, try again!")
		case errors.Is(err, repository.ErrDuplicateItemType):
			a.p.Fail("A clothes type with this name already exists. Please, try again!")
		default:
			return err
		}
		return nil
	}

	a.p.Success("Renamed clothes type with id %d to %q.", id, name)
	return nil
}

func (a *App) removeItemType(ctx context.Context, ids []int64) error {
	id, err := a.p.Int("clothes type id",
		idCheck(ids, "There is no clothes type with this id. Please, try again!"))
	if err != nil {
		return err
	}

	if err := a.catalog.RemoveItemType(ctx, int64(id)); err != nil {
		if errors.Is(err, repository.ErrItemTypeNotFound) {
			a.p.Fail("There is no clothes type with this id. Please, try again!")
			return nil
		}
		// Removal fails while catalog items of this type still exist.
		a.p.Fail("Could not remove the clothes type: %v", err)
		return nil
	}

	a.p.Success("Removed clothes type with id %d.", id)
	return nil
}

func nonNegativePrice() FloatCheck {
	return FloatCheck{
		OK:  func(f float64) bool { return f >= 0 },
		Msg: "Price can't be negative. Please, try again!",
	}
}

func validDiscount() FloatCheck {
	return FloatCheck{
		OK:  func(f float64) bool { return f >= 0 && f < 100 },
		Msg: "Discount must be between 0 and 100 percent. Please, try again!",
	}
}

func nonNegativeQuantity() IntCheck {
	return IntCheck{
		OK:  func(n int) bool { return n >= 0 },
		Msg: "Quantity can't be negative. Please, try again!",
	}
}
