package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/services"
	"github.com/workbridge-dev/workbridge/internal/utils"
)

type CreateProposalRequest struct {
	CoverLetter   string  `json:"cover_letter"`
	ProposedPrice float64 `json:"proposed_price" binding:"required,gt=0"`
	DeliveryDays  int     `json:"delivery_days" binding:"omitempty,gt=0"`
}

type MilestoneSpec struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

type AcceptProposalRequest struct {
	Milestones []MilestoneSpec `json:"milestones" binding:"required,min=1,dive"`
}

type ProposalResponse struct {
	ID            uint    `json:"id"`
	ProjectID     uint    `json:"project_id"`
	FreelancerID  uint    `json:"freelancer_id"`
	CoverLetter   string  `json:"cover_letter"`
	ProposedPrice float64 `json:"proposed_price"`
	DeliveryDays  int     `json:"delivery_days"`
	Status        string  `json:"status"`
}

func proposalToResponse(proposal models.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:            proposal.ID,
		ProjectID:     proposal.ProjectID,
		FreelancerID:  proposal.FreelancerID,
		CoverLetter:   proposal.CoverLetter,
		ProposedPrice: proposal.ProposedPrice,
		DeliveryDays:  proposal.DeliveryDays,
		Status:        proposal.Status,
	}
}

func CreateProposal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateProposalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	proposal, err := services.CreateProposal(db.DB, userID, projectID, body.CoverLetter, body.ProposedPrice, body.DeliveryDays)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, proposalToResponse(*proposal))
}

func ListProjectProposals(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND client_id = ?", projectID, userID).First(&project).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var proposals []models.Proposal

	if err := db.DB.Where("project_id = ?", projectID).Order("created_at ASC").Find(&proposals).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve proposals"})
		return
	}

	response := make([]ProposalResponse, 0, len(proposals))

	for _, proposal := range proposals {
		response = append(response, proposalToResponse(proposal))
	}

	ctx.JSON(http.StatusOK, response)
}

func ListMyProposals(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var proposals []models.Proposal

	if err := db.DB.Where("freelancer_id = ?", userID).Order("created_at DESC").Find(&proposals).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve proposals"})
		return
	}

	response := make([]ProposalResponse, 0, len(proposals))

	for _, proposal := range proposals {
		response = append(response, proposalToResponse(proposal))
	}

	ctx.JSON(http.StatusOK, response)
}

func AcceptProposal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	proposalID, err := utils.GetProposalID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AcceptProposalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	inputs := make([]services.MilestoneInput, 0, len(body.Milestones))

	for _, m := range body.Milestones {
		inputs = append(inputs, services.MilestoneInput{
			Title:       m.Title,
			Description: m.Description,
			Amount:      m.Amount,
			DueDate:     m.DueDate,
		})
	}

	result, err := services.AcceptProposal(db.DB, userID, proposalID, inputs)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	BroadcastContractUpdate(result.Contract.ID)

	milestones := make([]MilestoneResponse, 0, len(result.Milestones))

	for _, milestone := range result.Milestones {
		milestones = append(milestones, milestoneToResponse(milestone))
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"proposal":   proposalToResponse(result.Proposal),
		"contract":   contractToResponse(result.Contract),
		"milestones": milestones,
	})
}
