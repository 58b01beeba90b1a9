package services

import (
	"errors"

	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"gorm.io/gorm"
)

// CreateReview posts a review on a completed contract. The reviewee is always
// the other participant: clients review freelancers and freelancers review
// clients. A client review also folds the rating into the running average of
// every service the freelancer offers; freelancer reviews touch no service.
func CreateReview(gdb *gorm.DB, reviewerID uint, contractID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, invalidRequest("Rating must be between 1 and 5")
	}

	var contract models.Contract

	if err := gdb.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeContractNotFound, "Contract not found")
		}
		return nil, internalError(err)
	}

	if contract.Status != types.ContractCompleted {
		return nil, conflict(CodeContractNotCompleted, "Contract is not completed yet")
	}

	if reviewerID != contract.ClientID && reviewerID != contract.FreelancerID {
		return nil, forbidden("Only contract participants can leave a review")
	}

	var existing models.Review

	err := gdb.Where("contract_id = ? AND reviewer_id = ?", contractID, reviewerID).First(&existing).Error

	if err == nil {
		return nil, conflict(CodeAlreadyReviewed, "You have already reviewed this contract")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError(err)
	}

	revieweeID := contract.FreelancerID

	if reviewerID == contract.FreelancerID {
		revieweeID = contract.ClientID
	}

	review := models.Review{
		ContractID: contractID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}

	if err := gdb.Create(&review).Error; err != nil {
		return nil, internalError(err)
	}

	// Only client reviews feed service ratings; services exist on the
	// freelancer side of the marketplace.
	if reviewerID == contract.ClientID {
		if err := updateServiceRatings(gdb, contract.FreelancerID, rating); err != nil {
			return nil, err
		}
	}

	return &review, nil
}

// updateServiceRatings folds a new rating into the running average of each of
// the freelancer's services independently.
func updateServiceRatings(gdb *gorm.DB, freelancerID uint, rating int) error {
	var services []models.Service

	if err := gdb.Where("freelancer_id = ?", freelancerID).Find(&services).Error; err != nil {
		return internalError(err)
	}

	for _, service := range services {
		newTotal := service.TotalReviews + 1
		newRating := (service.Rating*float64(service.TotalReviews) + float64(rating)) / float64(newTotal)

		err := gdb.Model(&service).Updates(map[string]interface{}{
			"rating":        newRating,
			"total_reviews": newTotal,
		}).Error

		if err != nil {
			return internalError(err)
		}
	}

	return nil
}
