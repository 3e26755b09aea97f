package menu

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/vsynytsia/clothing-shop/internal/basket"
	"github.com/vsynytsia/clothing-shop/internal/domain"
)

func renderItems(items []*domain.CatalogItem) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\ttype\ttitle\tsize\tmaterial\tcolor\tprice\tdiscount\tin stock")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%.2f\t%.1f%%\t%d\n",
			item.ID, item.ItemTypeID, item.Title, item.Size, item.Material,
			item.Color, item.Price, item.Discount, item.InStock)
	}
	w.Flush()
	return sb.String()
}

func renderBasket(lines []basket.Line) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\ttitle\tsize\tmaterial\tcolor\tquantity\tprice\tdiscount\ttotal")
	for _, line := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%.2f\t%.1f%%\t%.2f\n",
			line.ItemID, line.Title, line.Size, line.Material, line.Color,
			line.Quantity, line.UnitPrice, line.Discount, line.Total)
	}
	w.Flush()
	return sb.String()
}

func renderOrderSummaries(orders []*domain.OrderSummary) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\tdate\tstatus")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status)
	}
	w.Flush()
	return sb.String()
}

func renderOrders(orders []*domain.Order) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\tuser\tdate\tstatus")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", o.ID, o.UserID, o.CreatedAt.Format("2006-01-02 15:04"), o.StatusID)
	}
	w.Flush()
	return sb.String()
}

func renderOrderDetails(details []*domain.OrderDetail) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "order\ttitle\tsize\tmaterial\tcolor\tquantity\tprice\tdiscount\ttotal\tstatus")
	for _, d := range details {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%.2f\t%.1f%%\t%.2f\t%s\n",
			d.OrderID, d.Title, d.Size, d.Material, d.Color,
			d.Quantity, d.Price, d.Discount, d.Total, d.Status)
	}
	w.Flush()
	return sb.String()
}

func renderUsers(users []*domain.User) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\tfirst name\tlast name\tphone\temail\trole")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.FirstName, u.LastName, u.PhoneNumber, u.Email, u.RoleID)
	}
	w.Flush()
	return sb.String()
}

func renderItemTypes(types []*domain.ItemType) string {
	var sb strings.Builder
	w := newTable(&sb)
	fmt.Fprintln(w, "id\tname")
	for _, it := range types {
		fmt.Fprintf(w, "%d\t%s\n", it.ID, it.Name)
	}
	w.Flush()
	return sb.String()
}

func newTable(sb *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(sb, 0, 4, 2, ' ', 0)
}
