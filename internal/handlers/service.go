package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	DeliveryDays int      `json:"delivery_days" binding:"required,gt=0"`
	Tags         []string `json:"tags"`
}

type UpdateServiceRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	DeliveryDays int      `json:"delivery_days" binding:"required,gt=0"`
	Tags         []string `json:"tags"`
}

type ServiceResponse struct {
	ID           uint    `json:"id"`
	FreelancerID uint    `json:"freelancer_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

// ServiceFilters is the explicit predicate applied to service listings.
type ServiceFilters struct {
	Category     string
	FreelancerID uint
	MaxPrice     float64
}

func serviceFiltersFromQuery(ctx *gin.Context) ServiceFilters {
	var filters ServiceFilters

	filters.Category = ctx.Query("category")

	if freelancerID, err := strconv.ParseUint(ctx.Query("freelancer_id"), 10, 32); err == nil {
		filters.FreelancerID = uint(freelancerID)
	}

	if maxPrice, err := strconv.ParseFloat(ctx.Query("max_price"), 64); err == nil {
		filters.MaxPrice = maxPrice
	}

	return filters
}

func (f ServiceFilters) apply(query *gorm.DB) *gorm.DB {
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}

	if f.FreelancerID != 0 {
		query = query.Where("freelancer_id = ?", f.FreelancerID)
	}

	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}

	return query
}

func serviceToResponse(service models.Service) ServiceResponse {
	return ServiceResponse{
		ID:           service.ID,
		FreelancerID: service.FreelancerID,
		Title:        service.Title,
		Description:  service.Description,
		Category:     service.Category,
		Price:        service.Price,
		DeliveryDays: service.DeliveryDays,
		Rating:       service.Rating,
		TotalReviews: service.TotalReviews,
	}
}

func CreateService(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateServiceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tags, err := utils.MarshalStringList(body.Tags)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags format"})
		return
	}

	service := models.Service{
		FreelancerID: userID,
		Title:        body.Title,
		Description:  body.Description,
		Category:     body.Category,
		Price:        body.Price,
		DeliveryDays: body.DeliveryDays,
		Tags:         datatypes.JSON(tags),
	}

	if err := db.DB.Create(&service).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	ctx.JSON(http.StatusCreated, serviceToResponse(service))
}

func ListServices(ctx *gin.Context) {
	filters := serviceFiltersFromQuery(ctx)

	var services []models.Service

	if err := filters.apply(db.DB).Order("rating DESC").Find(&services).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve services"})
		return
	}

	response := make([]ServiceResponse, 0, len(services))

	for _, service := range services {
		response = append(response, serviceToResponse(service))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateService(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	serviceID, err := utils.GetServiceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateServiceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var service models.Service

	if err := db.DB.Where("id = ? AND freelancer_id = ?", serviceID, userID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service"})
		}
		return
	}

	tags, err := utils.MarshalStringList(body.Tags)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags format"})
		return
	}

	service.Title = body.Title
	service.Description = body.Description
	service.Category = body.Category
	service.Price = body.Price
	service.DeliveryDays = body.DeliveryDays
	service.Tags = datatypes.JSON(tags)

	if err := db.DB.Save(&service).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	ctx.JSON(http.StatusOK, serviceToResponse(service))
}

func DeleteService(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	serviceID, err := utils.GetServiceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var service models.Service

	if err := db.DB.Where("id = ? AND freelancer_id = ?", serviceID, userID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service"})
		}
		return
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
