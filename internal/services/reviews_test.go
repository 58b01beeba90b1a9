package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/testutil"
	"github.com/workbridge-dev/workbridge/internal/types"
)

func TestCreateReviewRollsServiceRating(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectCompleted)
	contract := testutil.SeedContract(t, gdb, project.ID, client.ID, freelancer.ID, types.ContractCompleted)

	service := testutil.SeedService(t, gdb, freelancer.ID, 4.0, 3)

	review, err := CreateReview(gdb, client.ID, contract.ID, 5, "great work")
	require.NoError(t, err)
	require.Equal(t, freelancer.ID, review.RevieweeID)
	require.Equal(t, client.ID, review.ReviewerID)

	var serviceReloaded models.Service
	require.NoError(t, gdb.First(&serviceReloaded, service.ID).Error)
	require.InDelta(t, 4.25, serviceReloaded.Rating, 1e-9)
	require.Equal(t, 4, serviceReloaded.TotalReviews)
}

func TestCreateReviewUpdatesEachServiceIndependently(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectCompleted)
	contract := testutil.SeedContract(t, gdb, project.ID, client.ID, freelancer.ID, types.ContractCompleted)

	first := testutil.SeedService(t, gdb, freelancer.ID, 4.0, 3)
	second := testutil.SeedService(t, gdb, freelancer.ID, 0, 0)

	_, err := CreateReview(gdb, client.ID, contract.ID, 5, "")
	require.NoError(t, err)

	var firstReloaded models.Service
	require.NoError(t, gdb.First(&firstReloaded, first.ID).Error)
	require.InDelta(t, 4.25, firstReloaded.Rating, 1e-9)
	require.Equal(t, 4, firstReloaded.TotalReviews)

	var secondReloaded models.Service
	require.NoError(t, gdb.First(&secondReloaded, second.ID).Error)
	require.InDelta(t, 5.0, secondReloaded.Rating, 1e-9)
	require.Equal(t, 1, secondReloaded.TotalReviews)
}

func TestFreelancerReviewTouchesNoservices(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectCompleted)
	contract := testutil.SeedContract(t, gdb, project.ID, client.ID, freelancer.ID, types.ContractCompleted)

	service := testutil.SeedService(t, gdb, freelancer.ID, 4.0, 3)

	review, err := CreateReview(gdb, freelancer.ID, contract.ID, 3, "fine client")
	require.NoError(t, err)
	require.Equal(t, client.ID, review.RevieweeID)

	var serviceReloaded models.Service
	require.NoError(t, gdb.First(&serviceReloaded, service.ID).Error)
	require.InDelta(t, 4.0, serviceReloaded.Rating, 1e-9)
	require.Equal(t, 3, serviceReloaded.TotalReviews)
}

func TestCreateReviewRejectsInvalidStates(t *testing.T) {
	gdb := testutil.DB(t)

	client := testutil.SeedUser(t, gdb, "client@example.com", types.RoleClient)
	freelancer := testutil.SeedUser(t, gdb, "f@example.com", types.RoleFreelancer)
	outsider := testutil.SeedUser(t, gdb, "x@example.com", types.RoleClient)
	project := testutil.SeedProject(t, gdb, client.ID, types.ProjectInProgress)

	active := testutil.SeedContract(t, gdb, project.ID, client.ID, freelancer.ID, types.ContractActive)

	_, err := CreateReview(gdb, client.ID, active.ID, 5, "")
	requireCode(t, err, CodeContractNotCompleted)

	completed := testutil.SeedContract(t, gdb, project.ID, client.ID, freelancer.ID, types.ContractCompleted)

	_, err = CreateReview(gdb, client.ID, completed.ID, 0, "")
	requireCode(t, err, CodeInvalidRequest)

	_, err = CreateReview(gdb, client.ID, completed.ID, 6, "")
	requireCode(t, err, CodeInvalidRequest)

	_, err = CreateReview(gdb, outsider.ID, completed.ID, 4, "")
	requireCode(t, err, CodeForbidden)

	_, err = CreateReview(gdb, client.ID, 9999, 4, "")
	requireCode(t, err, CodeContractNotFound)

	_, err = CreateReview(gdb, client.ID, completed.ID, 4, "")
	require.NoError(t, err)

	_, err = CreateReview(gdb, client.ID, completed.ID, 4, "")
	requireCode(t, err, CodeAlreadyReviewed)

	// The freelancer still has their own review slot on the contract.
	_, err = CreateReview(gdb, freelancer.ID, completed.ID, 5, "")
	require.NoError(t, err)
}
