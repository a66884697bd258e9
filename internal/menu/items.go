package menu

import "fmt"

// Item is one entry of the main menu.
type Item int

const (
	ItemEnableProxy Item = iota
	ItemDisableProxy
	ItemSetPort
	ItemExit
)

// DefaultItems returns the menu entries in display order.
func DefaultItems() []Item {
	return []Item{ItemEnableProxy, ItemDisableProxy, ItemSetPort, ItemExit}
}

// Label returns the text shown for the item.
func (i Item) Label() string {
	switch i {
	case ItemEnableProxy:
		return "Enable proxy"
	case ItemDisableProxy:
		return "Disable proxy"
	case ItemSetPort:
		return "Set port"
	case ItemExit:
		return "Exit"
	default:
		return fmt.Sprintf("Item(%d)", int(i))
	}
}
