package services

import (
	"errors"

	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"gorm.io/gorm"
)

type ApproveMilestoneResult struct {
	Milestone         models.Milestone
	ContractCompleted bool
}

// SubmitMilestone moves a pending milestone to submitted. Only the contract's
// freelancer may submit, and a milestone can only be submitted once its
// predecessor in the contract's ordered sequence has been approved.
func SubmitMilestone(gdb *gorm.DB, freelancerID uint, milestoneID uint) (*models.Milestone, error) {
	var milestone models.Milestone

	if err := gdb.First(&milestone, milestoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeMilestoneNotFound, "Milestone not found")
		}
		return nil, internalError(err)
	}

	var contract models.Contract

	if err := gdb.First(&contract, milestone.ContractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeMilestoneNotFound, "Milestone not found")
		}
		return nil, internalError(err)
	}

	if contract.FreelancerID != freelancerID {
		return nil, forbidden("Only the contract freelancer can submit a milestone")
	}

	if milestone.Status == types.MilestoneSubmitted || milestone.Status == types.MilestoneApproved {
		return nil, conflict(CodeMilestoneAlreadySubmitted, "Milestone has already been submitted")
	}

	// Milestones must be delivered in order: the predecessor has to be
	// approved before this one can be submitted.
	if milestone.OrderIndex > 0 {
		var previous models.Milestone

		err := gdb.Where("contract_id = ? AND order_index = ?", milestone.ContractID, milestone.OrderIndex-1).
			First(&previous).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, conflict(CodePreviousMilestoneIncomplete, "Previous milestone must be approved first")
			}
			return nil, internalError(err)
		}

		if previous.Status != types.MilestoneApproved {
			return nil, conflict(CodePreviousMilestoneIncomplete, "Previous milestone must be approved first")
		}
	}

	if err := gdb.Model(&milestone).Update("status", types.MilestoneSubmitted).Error; err != nil {
		return nil, internalError(err)
	}

	return &milestone, nil
}

// ApproveMilestone marks a milestone approved on behalf of the contract's
// client. Approval is accepted from any non-approved state; a prior submit is
// not required. When the approval leaves every milestone of the contract
// approved, the contract and its project are marked completed.
func ApproveMilestone(gdb *gorm.DB, clientID uint, milestoneID uint) (*ApproveMilestoneResult, error) {
	var milestone models.Milestone

	if err := gdb.First(&milestone, milestoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeMilestoneNotFound, "Milestone not found")
		}
		return nil, internalError(err)
	}

	var contract models.Contract

	if err := gdb.First(&contract, milestone.ContractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeMilestoneNotFound, "Milestone not found")
		}
		return nil, internalError(err)
	}

	if contract.ClientID != clientID {
		return nil, forbidden("Only the contract client can approve a milestone")
	}

	if milestone.Status == types.MilestoneApproved {
		return nil, conflict(CodeMilestoneAlreadyApproved, "Milestone has already been approved")
	}

	if err := gdb.Model(&milestone).Update("status", types.MilestoneApproved).Error; err != nil {
		return nil, internalError(err)
	}

	completed, err := completeContractIfDone(gdb, &contract, milestone.ID)

	if err != nil {
		return nil, err
	}

	return &ApproveMilestoneResult{
		Milestone:         milestone,
		ContractCompleted: completed,
	}, nil
}

// completeContractIfDone re-reads the contract's milestones after an approval
// and completes the contract and project once every milestone is approved.
// The just-approved milestone is counted as approved regardless of what the
// re-read returns, so a stale read cannot block completion.
func completeContractIfDone(gdb *gorm.DB, contract *models.Contract, approvedID uint) (bool, error) {
	var milestones []models.Milestone

	if err := gdb.Where("contract_id = ?", contract.ID).Find(&milestones).Error; err != nil {
		return false, internalError(err)
	}

	for _, m := range milestones {
		if m.ID == approvedID {
			continue
		}
		if m.Status != types.MilestoneApproved {
			return false, nil
		}
	}

	if err := gdb.Model(contract).Update("status", types.ContractCompleted).Error; err != nil {
		return false, internalError(err)
	}

	err := gdb.Model(&models.Project{}).
		Where("id = ?", contract.ProjectID).
		Update("status", types.ProjectCompleted).Error

	if err != nil {
		return false, internalError(err)
	}

	return true, nil
}
