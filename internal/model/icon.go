package model

// Icon is the symbolic name of a category icon. Rendering is up to the caller.
type Icon string

// Known icons.
const (
	IconCreditCard    Icon = "CreditCard"
	IconShoppingCart  Icon = "ShoppingCart"
	IconHome          Icon = "Home"
	IconCar           Icon = "Car"
	IconUtensils      Icon = "Utensils"
	IconPlane         Icon = "Plane"
	IconGraduationCap Icon = "GraduationCap"
	IconCoffee        Icon = "Coffee"
	IconGift          Icon = "Gift"
	IconDroplet       Icon = "Droplet"
	IconBanknote      Icon = "Banknote"
	IconZap           Icon = "Zap"
	IconWifi          Icon = "Wifi"
	IconSmartphone    Icon = "Smartphone"
	IconHeartPulse    Icon = "HeartPulse"
)

// DefaultIcon is used for unknown or empty icon names.
const DefaultIcon = IconCreditCard

// Icons lists every known icon in display order.
var Icons = []Icon{
	IconCreditCard, IconShoppingCart, IconHome, IconCar, IconUtensils,
	IconPlane, IconGraduationCap, IconCoffee, IconGift, IconDroplet,
	IconBanknote, IconZap, IconWifi, IconSmartphone, IconHeartPulse,
}

// Known reports whether the icon is one of Icons.
func (i Icon) Known() bool {
	for _, known := range Icons {
		if i == known {
			return true
		}
	}
	return false
}

// ResolveIcon maps a stored icon name to a known icon, falling back to
// DefaultIcon.
func ResolveIcon(name string) Icon {
	if icon := Icon(name); icon.Known() {
		return icon
	}
	return DefaultIcon
}
