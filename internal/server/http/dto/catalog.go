package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

type PackageRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type AddonRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PackageUpdateRequest is a partial update; omitted fields stay unchanged.
type PackageUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

func (r PackageUpdateRequest) Model() model.PackageUpdate {
	return model.PackageUpdate{Name: r.Name, Description: r.Description, Price: r.Price, Active: r.Active}
}

type AddonUpdateRequest struct {
	Name   *string          `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Active *bool            `json:"active"`
}

func (r AddonUpdateRequest) Model() model.AddonUpdate {
	return model.AddonUpdate{Name: r.Name, Price: r.Price, Active: r.Active}
}

type PackageResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Active      bool   `json:"active"`
}

type AddonResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Active bool   `json:"active"`
}

func NewPackageResponse(p model.WashPackage) PackageResponse {
	return PackageResponse{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price.StringFixed(2), Active: p.Active}
}

func NewAddonResponse(a model.Addon) AddonResponse {
	return AddonResponse{ID: a.ID, Name: a.Name, Price: a.Price.StringFixed(2), Active: a.Active}
}

func NewPackageListResponse(packages []model.WashPackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, NewPackageResponse(p))
	}
	return out
}

func NewAddonListResponse(addons []model.Addon) []AddonResponse {
	out := make([]AddonResponse, 0, len(addons))
	for _, a := range addons {
		out = append(out, NewAddonResponse(a))
	}
	return out
}
