package menu

import (
	"context"
	"errors"

	"github.com/vsynytsia/clothing-shop/internal/auth"
	"github.com/vsynytsia/clothing-shop/internal/domain"
)

const guestMenu = `Welcome to the clothing shop! What would you like to do?
1) Sign in
2) Sign up
3) View available clothes
4) Exit`

// runGuest loops the start dialog until someone signs in or leaves.
// A nil user with a nil error means the guest chose to exit.
func (a *App) runGuest(ctx context.Context) (*domain.User, error) {
	for {
		choice, err := a.p.Choice(guestMenu, 1, 2, 3, 4)
		if err != nil {
			return nil, err
		}

		switch choice {
		case 1:
			user, err := a.signIn(ctx)
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		case 2:
			user, err := a.signUp(ctx)
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		case 3:
			if err := a.browseAsGuest(ctx); err != nil {
				return nil, err
			}
		case 4:
			return nil, nil
		}
	}
}

func (a *App) signIn(ctx context.Context) (*domain.User, error) {
	email, err := a.p.String("email")
	if err != nil {
		return nil, err
	}
	password, err := a.p.String("password")
	if err != nil {
		return nil, err
	}

	user, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			a.p.Fail("Incorrect email or password. Please, try again!")
			return nil, nil
		}
		return nil, err
	}

	a.p.Success("Successfully signed in. Welcome back, %s!", user.FirstName)
	return user, nil
}

func (a *App) signUp(ctx context.Context) (*domain.User, error) {
	firstName, err := a.p.String("first name")
	if err != nil {
		return nil, err
	}
	lastName, err := a.p.String("last name")
	if err != nil {
		return nil, err
	}
	phoneNumber, err := a.p.String("phone number")
	if err != nil {
		return nil, err
	}
	email, err := a.p.String("email")
	if err != nil {
		return nil, err
	}
	password, err := a.p.String("password")
	if err != nil {
		return nil, err
	}

	user, err := a.auth.SignUp(ctx, &domain.User{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		Email:       email,
	}, password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			a.p.Fail("A user with this email already exists. Sign in instead!")
			return nil, nil
		}
		return nil, err
	}

	a.p.Success("Successfully signed up. Welcome, %s!", user.FirstName)
	return user, nil
}

func (a *App) browseAsGuest(ctx context.Context) error {
	items, err := a.catalog.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.p.Warn("No clothes available yet. Come back later!")
		return nil
	}

	a.p.Say("%s", renderItems(items))
	_, err = a.p.Choice("1) Back", 1)
	return err
}
