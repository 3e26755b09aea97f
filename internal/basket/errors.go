package basket

import "errors"

var (
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrItemAlreadyInBasket    = errors.New("item already in basket")
	ErrLineNotFound           = errors.New("item not in basket")
	ErrRemovalExceedsQuantity = errors.New("removal amount exceeds held quantity")
	ErrStockExceeded          = errors.New("not enough items in stock")
)
