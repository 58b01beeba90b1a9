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

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID         uint      `json:"id"`
	ContractID uint      `json:"contract_id"`
	ReviewerID uint      `json:"reviewer_id"`
	RevieweeID uint      `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func reviewToResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		ContractID: review.ContractID,
		ReviewerID: review.ReviewerID,
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

func CreateReview(ctx *gin.Context) {
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

	var body CreateReviewRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	review, err := services.CreateReview(db.DB, userID, contractID, body.Rating, body.Comment)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, reviewToResponse(*review))
}

func ListUserReviews(ctx *gin.Context) {
	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reviews []models.Review

	if err := db.DB.Where("reviewee_id = ?", userID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))

	for _, review := range reviews {
		response = append(response, reviewToResponse(review))
	}

	ctx.JSON(http.StatusOK, response)
}
