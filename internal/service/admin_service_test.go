package service

import (
	"context"
	"testing"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture() (AdminService, *memUserRepo, *memBatchRepo, *memPostRepo, *recordingSearchService) {
	userRepo := newMemUserRepo()
	batchRepo := newMemBatchRepo()
	postRepo := newMemPostRepo()
	searchSvc := &recordingSearchService{}
	svc := NewAdminService(userRepo, batchRepo, postRepo, searchSvc)
	return svc, userRepo, batchRepo, postRepo, searchSvc
}

func TestApprovalLinksBatchGroup(t *testing.T) {
	svc, userRepo, batchRepo, _, searchSvc := newAdminFixture()

	pending := userRepo.add(&model.User{
		Name:        "Andi Pratama",
		Email:       "andi@example.com",
		Role:        model.RoleUser,
		Status:      model.StatusPending,
		PassingYear: 2018,
	})

	approved, err := svc.SetUserStatus(context.Background(), pending.ID, dto.SetUserStatusInput{
		Status: model.StatusApproved,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusApproved, approved.Status)
	require.NotNil(t, approved.BatchGroupID)

	batch, err := batchRepo.FindByYear(context.Background(), 2018)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, *approved.BatchGroupID)

	assert.Contains(t, searchSvc.indexed, pending.ID.String())
}

func TestApprovalReusesExistingBatchGroup(t *testing.T) {
	svc, userRepo, batchRepo, _, _ := newAdminFixture()

	existing, err := batchRepo.FindOrCreateByYear(context.Background(), 2015)
	require.NoError(t, err)

	pending := userRepo.add(&model.User{
		Name:        "Budi Santoso",
		Email:       "budi@example.com",
		Role:        model.RoleUser,
		Status:      model.StatusPending,
		PassingYear: 2015,
	})

	approved, err := svc.SetUserStatus(context.Background(), pending.ID, dto.SetUserStatusInput{
		Status: model.StatusApproved,
	})
	require.NoError(t, err)

	require.NotNil(t, approved.BatchGroupID)
	assert.Equal(t, existing.ID, *approved.BatchGroupID)
	assert.Equal(t, 1, batchRepo.creates)
}

func TestReApprovalDoesNotReindex(t *testing.T) {
	svc, userRepo, batchRepo, _, searchSvc := newAdminFixture()

	batch, err := batchRepo.FindOrCreateByYear(context.Background(), 2015)
	require.NoError(t, err)

	user := userRepo.add(&model.User{
		Name:         "Sarah Wijaya",
		Email:        "sarah@example.com",
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2015,
		BatchGroupID: &batch.ID,
	})

	_, err = svc.SetUserStatus(context.Background(), user.ID, dto.SetUserStatusInput{
		Status: model.StatusApproved,
	})
	require.NoError(t, err)

	assert.Empty(t, searchSvc.indexed)
}

func TestRejectionKeepsBatchMembership(t *testing.T) {
	svc, userRepo, batchRepo, _, _ := newAdminFixture()

	batch, err := batchRepo.FindOrCreateByYear(context.Background(), 2015)
	require.NoError(t, err)

	user := userRepo.add(&model.User{
		Name:         "Sarah Wijaya",
		Email:        "sarah@example.com",
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2015,
		BatchGroupID: &batch.ID,
	})

	rejected, err := svc.SetUserStatus(context.Background(), user.ID, dto.SetUserStatusInput{
		Status: model.StatusRejected,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.BatchGroupID)
	assert.Equal(t, batch.ID, *rejected.BatchGroupID)
}

func TestSetUserStatusCanPromoteRole(t *testing.T) {
	svc, userRepo, _, _, _ := newAdminFixture()

	user := userRepo.add(&model.User{
		Name:        "Sarah Wijaya",
		Email:       "sarah@example.com",
		Role:        model.RoleUser,
		Status:      model.StatusApproved,
		PassingYear: 2015,
	})

	adminRole := model.RoleAdmin
	updated, err := svc.SetUserStatus(context.Background(), user.ID, dto.SetUserStatusInput{
		Status: model.StatusApproved,
		Role:   &adminRole,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
}

func TestSetUserStatusUnknownUser(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	_, err := svc.SetUserStatus(context.Background(), uuid.New(), dto.SetUserStatusInput{
		Status: model.StatusApproved,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteUserRemovesSearchDocument(t *testing.T) {
	svc, userRepo, _, _, searchSvc := newAdminFixture()

	user := userRepo.add(&model.User{
		Name:        "Sarah Wijaya",
		Email:       "sarah@example.com",
		Role:        model.RoleUser,
		Status:      model.StatusApproved,
		PassingYear: 2015,
	})

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err := userRepo.FindByID(context.Background(), user.ID)
	require.Error(t, err)
	assert.Contains(t, searchSvc.removed, user.ID.String())
}

func TestStatsCountsMembersAndPosts(t *testing.T) {
	svc, userRepo, _, postRepo, _ := newAdminFixture()

	userRepo.add(&model.User{Email: "admin@example.com", Role: model.RoleAdmin, Status: model.StatusApproved})
	approved := userRepo.add(&model.User{Email: "a@example.com", Role: model.RoleUser, Status: model.StatusApproved})
	userRepo.add(&model.User{Email: "b@example.com", Role: model.RoleUser, Status: model.StatusPending})

	postRepo.add(&model.Post{UserID: approved.ID, Content: "hello", Visibility: model.VisibilityPublic})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Posts)
}
