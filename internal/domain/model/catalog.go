package model

import "github.com/shopspring/decimal"

// WashPackage is a priced base service.
type WashPackage struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
}

// Addon is an optional extra priced on top of a package.
type Addon struct {
	ID     int64
	Name   string
	Price  decimal.Decimal
	Active bool
}

// PackageUpdate carries the fields an admin changes on a package. Nil fields
// keep their stored value.
type PackageUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Active      *bool
}

// Empty reports whether the update changes nothing.
func (u PackageUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Active == nil
}

// AddonUpdate carries the fields an admin changes on an addon.
type AddonUpdate struct {
	Name   *string
	Price  *decimal.Decimal
	Active *bool
}

func (u AddonUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Active == nil
}

// Quote is the priced selection captured into an order at placement.
type Quote struct {
	Package WashPackage
	Addons  []Addon
	Total   decimal.Decimal
}
