package guard

import "github.com/Veraticus/money-tracker/internal/model"

// NavItem is one entry of the main menu.
type NavItem struct {
	Route Route
	Label string
	Key   string
}

// Navigation returns the menu for user. Admin is listed for superadmins only;
// the download page is reachable but never listed. Anonymous sessions get no menu.
func Navigation(user *model.User) []NavItem {
	if user == nil {
		return nil
	}
	items := []NavItem{
		{Route: Dashboard, Label: "Dashboard", Key: "1"},
		{Route: Transactions, Label: "Transaksi", Key: "2"},
		{Route: Categories, Label: "Kategori", Key: "3"},
	}
	if user.IsSuperadmin() {
		items = append(items, NavItem{Route: Admin, Label: "Admin", Key: "4"})
	}
	return items
}
