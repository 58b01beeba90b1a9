package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/testutil"
	"github.com/workbridge-dev/workbridge/internal/types"
)

func TestSubmitMilestoneFirstNeedsNoPredecessor(t *testing.T) {
	gdb := testutil.DB(t)

	_, freelancer, _, _, milestones := testutil.SeedAcceptedContract(t, gdb, 2)

	milestone, err := SubmitMilestone(gdb, freelancer.ID, milestones[0].ID)
	require.NoError(t, err)
	require.Equal(t, types.MilestoneSubmitted, milestone.Status)
}

func TestSubmitMilestoneRequiresApprovedPredecessor(t *testing.T) {
	gdb := testutil.DB(t)

	client, freelancer, _, _, milestones := testutil.SeedAcceptedContract(t, gdb, 3)

	_, err := SubmitMilestone(gdb, freelancer.ID, milestones[1].ID)
	requireCode(t, err, CodePreviousMilestoneIncomplete)

	// A submitted but unapproved predecessor is not enough.
	_, err = SubmitMilestone(gdb, freelancer.ID, milestones[0].ID)
	require.NoError(t, err)

	_, err = SubmitMilestone(gdb, freelancer.ID, milestones[1].ID)
	requireCode(t, err, CodePreviousMilestoneIncomplete)

	_, err = ApproveMilestone(gdb, client.ID, milestones[0].ID)
	require.NoError(t, err)

	milestone, err := SubmitMilestone(gdb, freelancer.ID, milestones[1].ID)
	require.NoError(t, err)
	require.Equal(t, types.MilestoneSubmitted, milestone.Status)
}

func TestSubmitMilestoneAuthorizationAndConflicts(t *testing.T) {
	gdb := testutil.DB(t)

	client, freelancer, _, _, milestones := testutil.SeedAcceptedContract(t, gdb, 1)

	_, err := SubmitMilestone(gdb, client.ID, milestones[0].ID)
	requireCode(t, err, CodeForbidden)

	_, err = SubmitMilestone(gdb, freelancer.ID, 9999)
	requireCode(t, err, CodeMilestoneNotFound)

	_, err = SubmitMilestone(gdb, freelancer.ID, milestones[0].ID)
	require.NoError(t, err)

	_, err = SubmitMilestone(gdb, freelancer.ID, milestones[0].ID)
	requireCode(t, err, CodeMilestoneAlreadySubmitted)
}

func TestApproveMilestoneWithoutPriorSubmit(t *testing.T) {
	gdb := testutil.DB(t)

	client, _, _, _, milestones := testutil.SeedAcceptedContract(t, gdb, 2)

	// Approval is accepted straight from pending; submit is not a
	// prerequisite.
	result, err := ApproveMilestone(gdb, client.ID, milestones[0].ID)
	require.NoError(t, err)
	require.Equal(t, types.MilestoneApproved, result.Milestone.Status)
	require.False(t, result.ContractCompleted)
}

func TestApproveMilestoneAuthorizationAndConflicts(t *testing.T) {
	gdb := testutil.DB(t)

	client, freelancer, _, _, milestones := testutil.SeedAcceptedContract(t, gdb, 1)

	_, err := ApproveMilestone(gdb, freelancer.ID, milestones[0].ID)
	requireCode(t, err, CodeForbidden)

	_, err = ApproveMilestone(gdb, client.ID, 9999)
	requireCode(t, err, CodeMilestoneNotFound)

	_, err = ApproveMilestone(gdb, client.ID, milestones[0].ID)
	require.NoError(t, err)

	_, err = ApproveMilestone(gdb, client.ID, milestones[0].ID)
	requireCode(t, err, CodeMilestoneAlreadyApproved)
}

func TestApproveNonFinalMilestoneLeavesContractActive(t *testing.T) {
	gdb := testutil.DB(t)

	client, _, project, contract, milestones := testutil.SeedAcceptedContract(t, gdb, 2)

	result, err := ApproveMilestone(gdb, client.ID, milestones[0].ID)
	require.NoError(t, err)
	require.False(t, result.ContractCompleted)

	var contractReloaded models.Contract
	require.NoError(t, gdb.First(&contractReloaded, contract.ID).Error)
	require.Equal(t, types.ContractActive, contractReloaded.Status)

	var projectReloaded models.Project
	require.NoError(t, gdb.First(&projectReloaded, project.ID).Error)
	require.Equal(t, types.ProjectInProgress, projectReloaded.Status)
}

func TestApproveFinalMilestoneCompletesContractAndProject(t *testing.T) {
	gdb := testutil.DB(t)

	client, _, project, contract, milestones := testutil.SeedAcceptedContract(t, gdb, 3)

	for i, milestone := range milestones {
		result, err := ApproveMilestone(gdb, client.ID, milestone.ID)
		require.NoError(t, err)
		require.Equal(t, i == len(milestones)-1, result.ContractCompleted)
	}

	var contractReloaded models.Contract
	require.NoError(t, gdb.First(&contractReloaded, contract.ID).Error)
	require.Equal(t, types.ContractCompleted, contractReloaded.Status)

	var projectReloaded models.Project
	require.NoError(t, gdb.First(&projectReloaded, project.ID).Error)
	require.Equal(t, types.ProjectCompleted, projectReloaded.Status)
}

func TestAcceptThenDeliverEndToEnd(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancerA := testutil.SeedUser(t, gdb, "a@example.com", types.RoleFreelancer)
	freelancerB := testutil.SeedUser(t, gdb, "b@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectOpen)

	proposalA := testutil.SeedProposal(t, gdb, project.ID, freelancerA.ID, types.ProposalPending, 1000)
	testutil.SeedProposal(t, gdb, project.ID, freelancerB.ID, types.ProposalPending, 900)

	accepted, err := AcceptProposal(gdb, client.ID, proposalA.ID, milestoneInputs(2))
	require.NoError(t, err)
	require.Len(t, accepted.Milestones, 2)

	// Full delivery cycle: submit and approve in order.
	_, err = SubmitMilestone(gdb, freelancerA.ID, accepted.Milestones[0].ID)
	require.NoError(t, err)

	result, err := ApproveMilestone(gdb, client.ID, accepted.Milestones[0].ID)
	require.NoError(t, err)
	require.False(t, result.ContractCompleted)

	_, err = SubmitMilestone(gdb, freelancerA.ID, accepted.Milestones[1].ID)
	require.NoError(t, err)

	result, err = ApproveMilestone(gdb, client.ID, accepted.Milestones[1].ID)
	require.NoError(t, err)
	require.True(t, result.ContractCompleted)

	var contractReloaded models.Contract
	require.NoError(t, gdb.First(&contractReloaded, accepted.Contract.ID).Error)
	require.Equal(t, types.ContractCompleted, contractReloaded.Status)
}
