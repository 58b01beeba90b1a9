package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/testutil"
	"github.com/workbridge-dev/workbridge/internal/types"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, code, svcErr.Code)
}

func milestoneInputs(n int) []MilestoneInput {
	inputs := make([]MilestoneInput, 0, n)

	for i := 0; i < n; i++ {
		inputs = append(inputs, MilestoneInput{
			Title:   "Milestone",
			Amount:  100,
			DueDate: time.Now().Add(time.Duration(i+1) * 7 * 24 * time.Hour),
		})
	}

	return inputs
}

func TestAcceptProposalCreatesContractAndRejectsSiblings(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancerA := testutil.SeedUser(t, gdb, "a@example.com", types.RoleFreelancer)
	freelancerB := testutil.SeedUser(t, gdb, "b@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)

	proposalA := testutil.SeedProposal(t, gdb, project.ID, freelancerA.ID, types.ProposalPending, 800)
	proposalB := testutil.SeedProposal(t, gdb, project.ID, freelancerB.ID, types.ProposalPending, 600)

	result, err := AcceptProposal(gdb, client.ID, proposalA.ID, milestoneInputs(2))
	require.NoError(t, err)

	require.Equal(t, types.ProposalAccepted, result.Proposal.Status)
	require.Equal(t, types.ContractActive, result.Contract.Status)
	require.Equal(t, project.ID, result.Contract.ProjectID)
	require.Equal(t, client.ID, result.Contract.ClientID)
	require.Equal(t, freelancerA.ID, result.Contract.FreelancerID)
	require.Equal(t, 800.0, result.Contract.TotalAmount)
	require.Len(t, result.Milestones, 2)

	var siblingReloaded models.Proposal
	require.NoError(t, gdb.First(&siblingReloaded, proposalB.ID).Error)
	require.Equal(t, types.ProposalRejected, siblingReloaded.Status)

	var projectReloaded models.Project
	require.NoError(t, gdb.First(&projectReloaded, project.ID).Error)
	require.Equal(t, types.ProjectInProgress, projectReloaded.Status)

	var accepted int64
	require.NoError(t, gdb.Model(&models.Proposal{}).
		Where("project_id = ? AND status = ?", project.ID, types.ProposalAccepted).
		Count(&accepted).Error)
	require.EqualValues(t, 1, accepted)
}

func TestAcceptProposalAssignsOrderIndexByInputPosition(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)
	proposal := testutil.SeedProposal(t, gdb, project.ID, freelancer.ID, types.ProposalPending, 500)

	// Due dates deliberately out of order: position in the request decides
	// the sequence, not the calendar.
	inputs := []MilestoneInput{
		{Title: "first", Amount: 100, DueDate: time.Now().Add(90 * 24 * time.Hour)},
		{Title: "second", Amount: 200, DueDate: time.Now().Add(10 * 24 * time.Hour)},
		{Title: "third", Amount: 300, DueDate: time.Now().Add(40 * 24 * time.Hour)},
	}

	result, err := AcceptProposal(gdb, client.ID, proposal.ID, inputs)
	require.NoError(t, err)
	require.Len(t, result.Milestones, 3)

	for i, milestone := range result.Milestones {
		require.Equal(t, i, milestone.OrderIndex)
		require.Equal(t, inputs[i].Title, milestone.Title)
		require.Equal(t, types.MilestonePending, milestone.Status)
	}
}

func TestAcceptProposalAlreadyProcessedPerformsNoWrites(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancerA := testutil.SeedUser(t, gdb, "a@example.com", types.RoleFreelancer)
	freelancerB := testutil.SeedUser(t, gdb, "b@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)

	rejected := testutil.SeedProposal(t, gdb, project.ID, freelancerA.ID, types.ProposalRejected, 800)
	pending := testutil.SeedProposal(t, gdb, project.ID, freelancerB.ID, types.ProposalPending, 600)

	_, err := AcceptProposal(gdb, client.ID, rejected.ID, milestoneInputs(1))
	requireCode(t, err, CodeProposalAlreadyProcessed)

	var pendingReloaded models.Proposal
	require.NoError(t, gdb.First(&pendingReloaded, pending.ID).Error)
	require.Equal(t, types.ProposalPending, pendingReloaded.Status)

	var projectReloaded models.Project
	require.NoError(t, gdb.First(&projectReloaded, project.ID).Error)
	require.Equal(t, types.ProjectOpen, projectReloaded.Status)

	var contracts int64
	require.NoError(t, gdb.Model(&models.Contract{}).Count(&contracts).Error)
	require.EqualValues(t, 0, contracts)

	var milestones int64
	require.NoError(t, gdb.Model(&models.Milestone{}).Count(&milestones).Error)
	require.EqualValues(t, 0, milestones)
}

func TestAcceptProposalOnlyProjectOwner(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	otherClient := testutil.SeedUser(t, gdb, "other@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)
	proposal := testutil.SeedProposal(t, gdb, project.ID, freelancer.ID, types.ProposalPending, 500)

	_, err := AcceptProposal(gdb, otherClient.ID, proposal.ID, milestoneInputs(1))
	requireCode(t, err, CodeForbidden)

	var proposalReloaded models.Proposal
	require.NoError(t, gdb.First(&proposalReloaded, proposal.ID).Error)
	require.Equal(t, types.ProposalPending, proposalReloaded.Status)
}

func TestAcceptProposalNotFound(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)

	_, err := AcceptProposal(gdb, client.ID, 12345, milestoneInputs(1))
	requireCode(t, err, CodeProposalNotFound)
}

func TestAcceptProposalValidatesMilestones(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)
	proposal := testutil.SeedProposal(t, gdb, project.ID, freelancer.ID, types.ProposalPending, 500)

	_, err := AcceptProposal(gdb, client.ID, proposal.ID, nil)
	requireCode(t, err, CodeInvalidRequest)

	_, err = AcceptProposal(gdb, client.ID, proposal.ID, []MilestoneInput{
		{Title: "ok", Amount: 0, DueDate: time.Now()},
	})
	requireCode(t, err, CodeInvalidRequest)

	_, err = AcceptProposal(gdb, client.ID, proposal.ID, []MilestoneInput{
		{Title: "   ", Amount: 100, DueDate: time.Now()},
	})
	requireCode(t, err, CodeInvalidRequest)
}

func TestCreateProposalRules(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)

	proposal, err := CreateProposal(gdb, freelancer.ID, project.ID, "hello", 400, 10)
	require.NoError(t, err)
	require.Equal(t, types.ProposalPending, proposal.Status)

	// One proposal per freelancer per project.
	_, err = CreateProposal(gdb, freelancer.ID, project.ID, "again", 350, 5)
	requireCode(t, err, CodeDuplicateProposal)

	// No bidding on your own project.
	_, err = CreateProposal(gdb, client.ID, project.ID, "self", 100, 5)
	requireCode(t, err, CodeForbidden)

	// Closed projects accept no proposals.
	inProgress := testutil.SeedProject(t, gdb, client.ID, types.ProjectInProgress)
	_, err = CreateProposal(gdb, freelancer.ID, inProgress.ID, "late", 100, 5)
	requireCode(t, err, CodeProjectNotOpen)

	_, err = CreateProposal(gdb, freelancer.ID, 9999, "ghost", 100, 5)
	requireCode(t, err, CodeProjectNotFound)
}
