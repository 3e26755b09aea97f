package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

// runAdmin drives the admin main menu: everything a worker can do plus
// account management.
func (a *App) runAdmin(ctx context.Context, sess *Session) (bool, error) {
	menu := fmt.Sprintf(`Welcome, %s! What would you like to do?
1) Manage users
2) Manage orders
3) Manage clothes
4) Manage clothes types
5) View available clothes
6) View my basket
7) View my orders
8) Switch users
9) Exit`, sess.User.FirstName)

	for {
		choice, err := a.p.Choice(menu, 1, 2, 3, 4, 5, 6, 7, 8, 9)
		if err != nil {
			return false, err
		}

		switch choice {
		case 1:
			err = a.manageUsers(ctx, sess)
		case 2:
			err = a.manageOrders(ctx)
		case 3:
			err = a.manageItems(ctx)
		case 4:
			err = a.manageItemTypes(ctx)
		case 5:
			err = a.shop(ctx, sess)
		case 6:
			err = a.basketMenu(ctx, sess)
		case 7:
			err = a.myOrders(ctx, sess)
		case 8:
			return true, nil
		case 9:
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func (a *App) manageUsers(ctx context.Context, sess *Session) error {
	for {
		users, err := a.users.ListUsers(ctx)
		if err != nil {
			return err
		}

		a.p.Say("%s", renderUsers(users))
		choice, err := a.p.Choice(`1) Change user role
2) Delete user
3) Back to main menu`, 1, 2, 3)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}

		switch choice {
		case 1:
			if err := a.changeUserRole(ctx, sess, ids); err != nil {
				return err
			}
		case 2:
			if err := a.deleteUser(ctx, sess, ids); err != nil {
				return err
			}
		case 3:
			return nil
		}
	}
}

func (a *App) changeUserRole(ctx context.Context, sess *Session, ids []int64) error {
	id, err := a.p.Int("user id",
		idCheck(ids, "There is no user with this id. Please, try again!"))
	if err != nil {
		return err
	}
	if int64(id) == sess.User.ID {
		a.p.Fail("You can't change your own role. Please, try again!")
		return nil
	}

	role, err := a.p.Choice(`Pick the new role:
1) customer
2) worker
3) admin`, 1, 2, 3)
	if err != nil {
		return err
	}

	if err := a.users.UpdateUserRole(ctx, int64(id), domain.Role(role)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			a.p.Fail("There is no user with this id. Please, try again!")
			return nil
		}
		return err
	}

	a.p.Success("User with id %d is now a %s.", id, domain.Role(role))
	return nil
}

func (a *App) deleteUser(ctx context.Context, sess *Session, ids []int64) error {
	id, err := a.p.Int("user id",
		idCheck(ids, "There is no user with this id. Please, try again!"))
	if err != nil {
		return err
	}
	if int64(id) == sess.User.ID {
		a.p.Fail("You can't delete your own account. Please, try again!")
		return nil
	}

	if err := a.users.DeleteUser(ctx, int64(id)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			a.p.Fail("There is no user with this id. Please, try again!")
			return nil
		}
		// Deletion fails while orders of this user still exist.
		a.p.Fail("Could not delete the user: %v", err)
		return nil
	}

	a.p.Success("Deleted user with id %d.", id)
	return nil
}
