package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a fresh in-memory sqlite database with the full schema migrated.
// The pool is pinned to a single connection so every query sees the same
// memory database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		tb.Fatalf("failed to access sql db: %v", err)
	}

	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Service{},
		&models.Proposal{},
		&models.Contract{},
		&models.Milestone{},
		&models.Review{},
	)

	if err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}

func SeedUser(tb testing.TB, gdb *gorm.DB, email string, role string) *models.User {
	tb.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
	}

	if err := gdb.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}

	return user
}

func SeedProject(tb testing.TB, gdb *gorm.DB, clientID uint, status string) *models.Project {
	tb.Helper()

	project := &models.Project{
		ClientID:    clientID,
		Title:       "Test Project",
		Description: "project under test",
		Status:      status,
		BudgetMin:   100,
		BudgetMax:   1000,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	}

	if err := gdb.Create(project).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}

	return project
}

func SeedProposal(tb testing.TB, gdb *gorm.DB, projectID uint, freelancerID uint, status string, price float64) *models.Proposal {
	tb.Helper()

	proposal := &models.Proposal{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		CoverLetter:   "cover letter",
		ProposedPrice: price,
		DeliveryDays:  14,
		Status:        status,
	}

	if err := gdb.Create(proposal).Error; err != nil {
		tb.Fatalf("seed proposal: %v", err)
	}

	return proposal
}

func SeedContract(tb testing.TB, gdb *gorm.DB, projectID uint, clientID uint, freelancerID uint, status string) *models.Contract {
	tb.Helper()

	contract := &models.Contract{
		ProjectID:    projectID,
		ClientID:     clientID,
		FreelancerID: freelancerID,
		TotalAmount:  500,
		Status:       status,
	}

	if err := gdb.Create(contract).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}

	return contract
}

func SeedMilestone(tb testing.TB, gdb *gorm.DB, contractID uint, orderIndex int, status string) *models.Milestone {
	tb.Helper()

	milestone := &models.Milestone{
		ContractID: contractID,
		OrderIndex: orderIndex,
		Title:      "Milestone",
		Amount:     100,
		DueDate:    time.Now().Add(7 * 24 * time.Hour),
		Status:     status,
	}

	if err := gdb.Create(milestone).Error; err != nil {
		tb.Fatalf("seed milestone: %v", err)
	}

	return milestone
}

func SeedService(tb testing.TB, gdb *gorm.DB, freelancerID uint, rating float64, totalReviews int) *models.Service {
	tb.Helper()

	service := &models.Service{
		FreelancerID: freelancerID,
		Title:        "Test Service",
		Category:     "development",
		Price:        250,
		DeliveryDays: 7,
		Rating:       rating,
		TotalReviews: totalReviews,
	}

	if err := gdb.Create(service).Error; err != nil {
		tb.Fatalf("seed service: %v", err)
	}

	return service
}

// SeedAcceptedContract wires up the common fixture of a client, freelancer,
// in-progress project, active contract, and n pending milestones.
func SeedAcceptedContract(tb testing.TB, gdb *gorm.DB, n int) (*models.User, *models.User, *models.Project, *models.Contract, []*models.Milestone) {
	tb.Helper()

	client := SeedUser(tb, gdb, "client@example.com", types.RoleClient)
	freelancer := SeedUser(tb, gdb, "freelancer@example.com", types.RoleFreelancer)
	project := SeedProject(tb, gdb, client.ID, types.ProjectInProgress)
	contract := SeedContract(tb, gdb, project.ID, client.ID, freelancer.ID, types.ContractActive)

	milestones := make([]*models.Milestone, 0, n)

	for i := 0; i < n; i++ {
		milestones = append(milestones, SeedMilestone(tb, gdb, contract.ID, i, types.MilestonePending))
	}

	return client, freelancer, project, contract, milestones
}
