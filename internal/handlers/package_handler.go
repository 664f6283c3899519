package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/httpresp"
	"github.com/velvetlens/studio-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PackageHandler struct {
	db *gorm.DB
}

func NewPackageHandler(db *gorm.DB) *PackageHandler {
	return &PackageHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type PackageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description" binding:"required"`

	DurationMin   int   `json:"duration_minutes"`
	PhotoCount    int   `json:"photo_count"`
	LocationCount int   `json:"location_count"`
	Active        *bool `json:"is_active"`
}

// ======================================================
// PUBLIC LIST
// ======================================================

func (h *PackageHandler) List(c *gin.Context) {
	var packages []models.Package
	if err := h.db.Order("created_at DESC").Find(&packages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_packages", "Could not list packages.")
		return
	}

	httpresp.List(c, packages)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *PackageHandler) Create(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, price and description are required.")
		return
	}

	pkg := models.Package{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		DurationMin:   defaultInt(req.DurationMin, 60),
		PhotoCount:    defaultInt(req.PhotoCount, 10),
		LocationCount: defaultInt(req.LocationCount, 1),
		Active:        req.Active == nil || *req.Active,
	}

	if err := h.db.Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_package", "Could not create package.")
		return
	}

	httpresp.Created(c, pkg)
}

func (h *PackageHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var pkg models.Package
	if err := h.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "package_not_found", "Package not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_package", "Could not update package.")
		return
	}

	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, price and description are required.")
		return
	}

	pkg.Name = req.Name
	pkg.Price = req.Price
	pkg.Description = req.Description
	if req.DurationMin > 0 {
		pkg.DurationMin = req.DurationMin
	}
	if req.PhotoCount > 0 {
		pkg.PhotoCount = req.PhotoCount
	}
	if req.LocationCount > 0 {
		pkg.LocationCount = req.LocationCount
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}

	if err := h.db.Save(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_package", "Could not update package.")
		return
	}

	httpresp.OK(c, pkg)
}

func (h *PackageHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var pkg models.Package
	if err := h.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "package_not_found", "Package not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_package", "Could not delete package.")
		return
	}

	if err := h.db.Delete(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_package", "Could not delete package.")
		return
	}

	httpresp.Message(c, "Package deleted.")
}

func defaultInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
