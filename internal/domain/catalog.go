package domain

// ItemType groups catalog items into categories (t-shirt, jacket, ...).
type ItemType struct {
	ID   int64
	Name string
}

// CatalogItem is one sellable position in the shop catalog.
// Price is non-negative, Discount is a percentage in [0, 100),
// InStock never goes below zero (decrements are guarded in the store).
type CatalogItem struct {
	ID          int64
	ItemTypeID  int64
	Title       string
	Description string
	Size        string
	Material    string
	Color       string
	Price       float64
	Discount    float64
	InStock     int
}
