// Package menu is the catalog family of café menu items.
//
// Menu items are read from the menu_items table and published to the POS
// categories listed in Categories. The Loyverse item id is written back to
// the loyverse_id column once an item is matched or created, and images are
// part of the comparison.
package menu
