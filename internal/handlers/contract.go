package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/utils"
	"gorm.io/gorm"
)

type ContractResponse struct {
	ID           uint    `json:"id"`
	ProjectID    uint    `json:"project_id"`
	ClientID     uint    `json:"client_id"`
	FreelancerID uint    `json:"freelancer_id"`
	TotalAmount  float64 `json:"total_amount"`
	Status       string  `json:"status"`
}

func contractToResponse(contract models.Contract) ContractResponse {
	return ContractResponse{
		ID:           contract.ID,
		ProjectID:    contract.ProjectID,
		ClientID:     contract.ClientID,
		FreelancerID: contract.FreelancerID,
		TotalAmount:  contract.TotalAmount,
		Status:       contract.Status,
	}
}

// findParticipantContract loads a contract and verifies the caller is one of
// its two participants.
func findParticipantContract(ctx *gin.Context, contractID uint, userID uint) (*models.Contract, bool) {
	var contract models.Contract

	if err := db.DB.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contract"})
		}
		return nil, false
	}

	if contract.ClientID != userID && contract.FreelancerID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this contract"})
		return nil, false
	}

	return &contract, true
}

func ListContracts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var contracts []models.Contract

	err = db.DB.Where("client_id = ? OR freelancer_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&contracts).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contracts"})
		return
	}

	response := make([]ContractResponse, 0, len(contracts))

	for _, contract := range contracts {
		response = append(response, contractToResponse(contract))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetContract(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contractID, err := utils.GetContractID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, ok := findParticipantContract(ctx, contractID, userID)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, contractToResponse(*contract))
}

func ListContractMilestones(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contractID, err := utils.GetContractID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, ok := findParticipantContract(ctx, contractID, userID)

	if !ok {
		return
	}

	var milestones []models.Milestone

	if err := db.DB.Where("contract_id = ?", contract.ID).Order("order_index ASC").Find(&milestones).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestones"})
		return
	}

	response := make([]MilestoneResponse, 0, len(milestones))

	for _, milestone := range milestones {
		response = append(response, milestoneToResponse(milestone))
	}

	ctx.JSON(http.StatusOK, response)
}
