package service

import (
	"context"
	"testing"
	"time"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture() (PostService, *memPostRepo, *memUserRepo, *memNotificationRepo) {
	postRepo := newMemPostRepo()
	commentRepo := &memCommentRepo{}
	userRepo := newMemUserRepo()
	notificationRepo := &memNotificationRepo{}
	notificationSvc := NewNotificationService(notificationRepo, nil)
	svc := NewPostService(postRepo, commentRepo, userRepo, notificationSvc, nil, time.Second)
	return svc, postRepo, userRepo, notificationRepo
}

func addBatchMember(repo *memUserRepo, email string, batchID *uuid.UUID) *model.User {
	return repo.add(&model.User{
		Name:         "Member",
		Email:        email,
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2015,
		BatchGroupID: batchID,
	})
}

func TestCreatePostDefaultsToPublic(t *testing.T) {
	svc, _, userRepo, _ := newPostFixture()
	author := addBatchMember(userRepo, "author@example.com", nil)

	post, err := svc.CreatePost(context.Background(), author.ID, dto.CreatePostInput{
		Content: "hello world",
	})
	require.NoError(t, err)

	assert.Equal(t, model.VisibilityPublic, post.Visibility)
	assert.Nil(t, post.BatchGroupID)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestCreateBatchPostPinsAuthorBatch(t *testing.T) {
	svc, _, userRepo, _ := newPostFixture()
	batchID := uuid.New()
	author := addBatchMember(userRepo, "author@example.com", &batchID)

	post, err := svc.CreatePost(context.Background(), author.ID, dto.CreatePostInput{
		Content:    "batch only",
		Visibility: model.VisibilityBatch,
	})
	require.NoError(t, err)

	require.NotNil(t, post.BatchGroupID)
	assert.Equal(t, batchID, *post.BatchGroupID)
}

func TestCreateBatchPostWithoutBatch(t *testing.T) {
	svc, _, userRepo, _ := newPostFixture()
	author := addBatchMember(userRepo, "author@example.com", nil)

	_, err := svc.CreatePost(context.Background(), author.ID, dto.CreatePostInput{
		Content:    "batch only",
		Visibility: model.VisibilityBatch,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestVisiblePostsIsolatesBatches(t *testing.T) {
	svc, postRepo, userRepo, _ := newPostFixture()

	batch2015 := uuid.New()
	batch2018 := uuid.New()
	alice := addBatchMember(userRepo, "alice@example.com", &batch2015)
	bob := addBatchMember(userRepo, "bob@example.com", &batch2018)

	postRepo.add(&model.Post{UserID: alice.ID, Content: "public", Visibility: model.VisibilityPublic})
	postRepo.add(&model.Post{UserID: alice.ID, Content: "2015 only", Visibility: model.VisibilityBatch, BatchGroupID: &batch2015})

	aliceFeed, err := svc.VisiblePosts(context.Background(), alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, aliceFeed, 2)
	require.NotNil(t, postRepo.lastViewerBatchID)
	assert.Equal(t, batch2015, *postRepo.lastViewerBatchID)

	bobFeed, err := svc.VisiblePosts(context.Background(), bob.ID, "")
	require.NoError(t, err)
	require.Len(t, bobFeed, 1)
	assert.Equal(t, "public", bobFeed[0].Content)
}

func TestVisiblePostsBatchFilterWithoutBatch(t *testing.T) {
	svc, postRepo, userRepo, _ := newPostFixture()

	viewer := addBatchMember(userRepo, "viewer@example.com", nil)
	postRepo.add(&model.Post{UserID: viewer.ID, Content: "public", Visibility: model.VisibilityPublic})

	feed, err := svc.VisiblePosts(context.Background(), viewer.ID, "batch")
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestAddCommentNotifiesAuthor(t *testing.T) {
	svc, postRepo, userRepo, notificationRepo := newPostFixture()

	author := addBatchMember(userRepo, "author@example.com", nil)
	commenter := addBatchMember(userRepo, "commenter@example.com", nil)
	post := postRepo.add(&model.Post{UserID: author.ID, Content: "hello", Visibility: model.VisibilityPublic})

	_, err := svc.AddComment(context.Background(), commenter.ID, post.ID, dto.AddCommentInput{
		Text: "nice post",
	})
	require.NoError(t, err)

	require.Len(t, notificationRepo.notifications, 1)
	notification := notificationRepo.notifications[0]
	assert.Equal(t, model.NotificationComment, notification.Type)
	assert.Equal(t, author.ID, notification.UserID)
	assert.Equal(t, commenter.ID, notification.ActorID)
}

func TestSelfCommentDoesNotNotify(t *testing.T) {
	svc, postRepo, userRepo, notificationRepo := newPostFixture()

	author := addBatchMember(userRepo, "author@example.com", nil)
	post := postRepo.add(&model.Post{UserID: author.ID, Content: "hello", Visibility: model.VisibilityPublic})

	_, err := svc.AddComment(context.Background(), author.ID, post.ID, dto.AddCommentInput{
		Text: "replying to myself",
	})
	require.NoError(t, err)
	assert.Empty(t, notificationRepo.notifications)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	svc, postRepo, userRepo, _ := newPostFixture()

	author := addBatchMember(userRepo, "author@example.com", nil)
	post := postRepo.add(&model.Post{UserID: author.ID, Content: "hello", Visibility: model.VisibilityPublic})

	_, err := svc.AddComment(context.Background(), author.ID, post.ID, dto.AddCommentInput{
		Text: "   ",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAddCommentUnknownPost(t *testing.T) {
	svc, _, userRepo, _ := newPostFixture()
	commenter := addBatchMember(userRepo, "commenter@example.com", nil)

	_, err := svc.AddComment(context.Background(), commenter.ID, uuid.New(), dto.AddCommentInput{
		Text: "hello?",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePostAuthorization(t *testing.T) {
	svc, postRepo, userRepo, _ := newPostFixture()

	author := addBatchMember(userRepo, "author@example.com", nil)
	other := addBatchMember(userRepo, "other@example.com", nil)
	admin := userRepo.add(&model.User{
		Email:  "admin@example.com",
		Role:   model.RoleAdmin,
		Status: model.StatusApproved,
	})

	first := postRepo.add(&model.Post{UserID: author.ID, Content: "one", Visibility: model.VisibilityPublic})
	second := postRepo.add(&model.Post{UserID: author.ID, Content: "two", Visibility: model.VisibilityPublic})

	err := svc.DeletePost(context.Background(), other.ID, first.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.DeletePost(context.Background(), author.ID, first.ID))
	require.NoError(t, svc.DeletePost(context.Background(), admin.ID, second.ID))

	count, err := postRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
