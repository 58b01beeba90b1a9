package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"github.com/workbridge-dev/workbridge/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	BudgetMin   float64   `json:"budget_min" binding:"required,gt=0"`
	BudgetMax   float64   `json:"budget_max" binding:"required,gtefield=BudgetMin"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Skills      []string  `json:"skills"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	BudgetMin   float64   `json:"budget_min"`
	BudgetMax   float64   `json:"budget_max"`
	Deadline    time.Time `json:"deadline"`
}

// ProjectFilters is the explicit predicate applied to project listings,
// built once from the query string.
type ProjectFilters struct {
	Status    string
	ClientID  uint
	MinBudget float64
	MaxBudget float64
}

func projectFiltersFromQuery(ctx *gin.Context) ProjectFilters {
	var filters ProjectFilters

	filters.Status = ctx.Query("status")

	if clientID, err := strconv.ParseUint(ctx.Query("client_id"), 10, 32); err == nil {
		filters.ClientID = uint(clientID)
	}

	if minBudget, err := strconv.ParseFloat(ctx.Query("min_budget"), 64); err == nil {
		filters.MinBudget = minBudget
	}

	if maxBudget, err := strconv.ParseFloat(ctx.Query("max_budget"), 64); err == nil {
		filters.MaxBudget = maxBudget
	}

	return filters
}

func (f ProjectFilters) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	if f.ClientID != 0 {
		query = query.Where("client_id = ?", f.ClientID)
	}

	if f.MinBudget > 0 {
		query = query.Where("budget_max >= ?", f.MinBudget)
	}

	if f.MaxBudget > 0 {
		query = query.Where("budget_min <= ?", f.MaxBudget)
	}

	return query
}

func projectToResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		ClientID:    project.ClientID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		BudgetMin:   project.BudgetMin,
		BudgetMax:   project.BudgetMax,
		Deadline:    project.Deadline,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	skills, err := utils.MarshalStringList(body.Skills)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skills format"})
		return
	}

	project := models.Project{
		ClientID:    userID,
		Title:       body.Title,
		Description: body.Description,
		Status:      types.ProjectOpen,
		BudgetMin:   body.BudgetMin,
		BudgetMax:   body.BudgetMax,
		Deadline:    body.Deadline,
		Skills:      datatypes.JSON(skills),
	}

	if err := db.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectToResponse(project))
}

func ListProjects(ctx *gin.Context) {
	filters := projectFiltersFromQuery(ctx)

	var projects []models.Project

	if err := filters.apply(db.DB).Order("created_at DESC").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectToResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectToResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND client_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if project.Status != types.ProjectOpen {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Only open projects can be edited"})
		return
	}

	project.Title = body.Title
	project.Description = body.Description

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectToResponse(project))
}
