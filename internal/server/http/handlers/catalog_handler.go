package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
)

// CatalogHandler serves the public catalog and its admin maintenance.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Packages handles GET /api/catalog/packages.
func (h *CatalogHandler) Packages(c *gin.Context) {
	packages, err := h.facade.Packages(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPackageListResponse(packages))
}

// Addons handles GET /api/catalog/addons.
func (h *CatalogHandler) Addons(c *gin.Context) {
	addons, err := h.facade.Addons(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddonListResponse(addons))
}

// CreatePackage handles POST /api/admin/packages.
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req dto.PackageRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, err := h.facade.CreatePackage(c.Request.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPackageResponse(*pkg))
}

// CreateAddon handles POST /api/admin/addons.
func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	var req dto.AddonRequest
	if !bindJSON(c, &req) {
		return
	}
	addon, err := h.facade.CreateAddon(c.Request.Context(), req.Name, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAddonResponse(*addon))
}

// AllPackages handles GET /api/admin/packages, including deactivated ones.
func (h *CatalogHandler) AllPackages(c *gin.Context) {
	packages, err := h.facade.AllPackages(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPackageListResponse(packages))
}

// AllAddons handles GET /api/admin/addons.
func (h *CatalogHandler) AllAddons(c *gin.Context) {
	addons, err := h.facade.AllAddons(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddonListResponse(addons))
}

// UpdatePackage handles PATCH /api/admin/packages/:id.
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PackageUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	pkg, err := h.facade.UpdatePackage(c.Request.Context(), id, req.Model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPackageResponse(*pkg))
}

// UpdateAddon handles PATCH /api/admin/addons/:id.
func (h *CatalogHandler) UpdateAddon(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddonUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	addon, err := h.facade.UpdateAddon(c.Request.Context(), id, req.Model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddonResponse(*addon))
}

// DeletePackage handles DELETE /api/admin/packages/:id. Orders reference
// packages, so the row is deactivated rather than removed.
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pkg, err := h.facade.DeactivatePackage(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPackageResponse(*pkg))
}

// DeleteAddon handles DELETE /api/admin/addons/:id.
func (h *CatalogHandler) DeleteAddon(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	addon, err := h.facade.DeactivateAddon(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAddonResponse(*addon))
}
