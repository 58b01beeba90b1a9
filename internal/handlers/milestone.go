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

type MilestoneResponse struct {
	ID          uint      `json:"id"`
	ContractID  uint      `json:"contract_id"`
	OrderIndex  int       `json:"order_index"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
}

func milestoneToResponse(milestone models.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          milestone.ID,
		ContractID:  milestone.ContractID,
		OrderIndex:  milestone.OrderIndex,
		Title:       milestone.Title,
		Description: milestone.Description,
		Amount:      milestone.Amount,
		DueDate:     milestone.DueDate,
		Status:      milestone.Status,
	}
}

func SubmitMilestone(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetMilestoneID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := services.SubmitMilestone(db.DB, userID, milestoneID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	BroadcastContractUpdate(milestone.ContractID)

	ctx.JSON(http.StatusOK, milestoneToResponse(*milestone))
}

func ApproveMilestone(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetMilestoneID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.ApproveMilestone(db.DB, userID, milestoneID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	BroadcastContractUpdate(result.Milestone.ContractID)

	ctx.JSON(http.StatusOK, gin.H{
		"milestone":          milestoneToResponse(result.Milestone),
		"contract_completed": result.ContractCompleted,
	})
}
