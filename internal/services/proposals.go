package services

import (
	"errors"
	"strings"
	"time"

	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"gorm.io/gorm"
)

type MilestoneInput struct {
	Title       string
	Description string
	Amount      float64
	DueDate     time.Time
}

type AcceptProposalResult struct {
	Proposal   models.Proposal
	Contract   models.Contract
	Milestones []models.Milestone
}

// AcceptProposal converts a pending proposal into a contract with an ordered
// set of milestones. The caller must be the owner of the proposal's project.
// All writes happen in a single transaction: the proposal is accepted, every
// sibling proposal is rejected, the project moves to in_progress, and the
// contract plus milestones are created. OrderIndex follows the input slice
// position, so the caller controls the dependency chain.
func AcceptProposal(gdb *gorm.DB, clientID uint, proposalID uint, milestones []MilestoneInput) (*AcceptProposalResult, error) {
	if len(milestones) == 0 {
		return nil, invalidRequest("At least one milestone is required")
	}

	for _, m := range milestones {
		if strings.TrimSpace(m.Title) == "" {
			return nil, invalidRequest("Milestone title is required")
		}
		if m.Amount <= 0 {
			return nil, invalidRequest("Milestone amount must be positive")
		}
	}

	var result AcceptProposalResult

	err := gdb.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal

		if err := tx.First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(CodeProposalNotFound, "Proposal not found")
			}
			return err
		}

		if proposal.Status != types.ProposalPending {
			return conflict(CodeProposalAlreadyProcessed, "Proposal has already been processed")
		}

		var project models.Project

		if err := tx.First(&project, proposal.ProjectID).Error; err != nil {
			return err
		}

		if project.ClientID != clientID {
			return forbidden("Only the project owner can accept a proposal")
		}

		if err := tx.Model(&proposal).Update("status", types.ProposalAccepted).Error; err != nil {
			return err
		}

		// Reject every other proposal on the project in one bulk update.
		if err := tx.Model(&models.Proposal{}).
			Where("project_id = ? AND id <> ?", proposal.ProjectID, proposal.ID).
			Update("status", types.ProposalRejected).Error; err != nil {
			return err
		}

		if err := tx.Model(&project).Update("status", types.ProjectInProgress).Error; err != nil {
			return err
		}

		contract := models.Contract{
			ProjectID:    project.ID,
			ClientID:     project.ClientID,
			FreelancerID: proposal.FreelancerID,
			TotalAmount:  proposal.ProposedPrice,
			Status:       types.ContractActive,
		}

		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		created := make([]models.Milestone, 0, len(milestones))

		for i, m := range milestones {
			milestone := models.Milestone{
				ContractID:  contract.ID,
				OrderIndex:  i,
				Title:       m.Title,
				Description: m.Description,
				Amount:      m.Amount,
				DueDate:     m.DueDate,
				Status:      types.MilestonePending,
			}

			if err := tx.Create(&milestone).Error; err != nil {
				return err
			}

			created = append(created, milestone)
		}

		result = AcceptProposalResult{
			Proposal:   proposal,
			Contract:   contract,
			Milestones: created,
		}

		return nil
	})

	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError(err)
	}

	return &result, nil
}

// CreateProposal records a freelancer's bid on an open project. A freelancer
// may bid at most once per project and never on their own project.
func CreateProposal(gdb *gorm.DB, freelancerID uint, projectID uint, coverLetter string, proposedPrice float64, deliveryDays int) (*models.Proposal, error) {
	if proposedPrice <= 0 {
		return nil, invalidRequest("Proposed price must be positive")
	}

	var project models.Project

	if err := gdb.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(CodeProjectNotFound, "Project not found")
		}
		return nil, internalError(err)
	}

	if project.ClientID == freelancerID {
		return nil, forbidden("Cannot submit a proposal on your own project")
	}

	if project.Status != types.ProjectOpen {
		return nil, conflict(CodeProjectNotOpen, "Project is not open for proposals")
	}

	var existing models.Proposal

	err := gdb.Where("project_id = ? AND freelancer_id = ?", projectID, freelancerID).First(&existing).Error

	if err == nil {
		return nil, conflict(CodeDuplicateProposal, "You have already submitted a proposal for this project")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError(err)
	}

	proposal := models.Proposal{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		CoverLetter:   coverLetter,
		ProposedPrice: proposedPrice,
		DeliveryDays:  deliveryDays,
		Status:        types.ProposalPending,
	}

	if err := gdb.Create(&proposal).Error; err != nil {
		return nil, internalError(err)
	}

	return &proposal, nil
}
