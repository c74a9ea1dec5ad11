package service

import (
	"context"
	"fmt"
	"time"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the persistence contracts closely
// enough for service-level tests: missing rows surface gorm.ErrRecordNotFound,
// unique pairs reject duplicates.

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *memUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return user
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	r.add(user)
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var found []model.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			found = append(found, *user)
		}
	}
	return found, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, status string) ([]model.User, error) {
	var found []model.User
	for _, user := range r.users {
		if status == "" || user.Status == status {
			found = append(found, *user)
		}
	}
	return found, nil
}

func (r *memUserRepo) Save(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Status == status {
			count++
		}
	}
	return count, nil
}

type memBatchRepo struct {
	batches map[int]*model.BatchGroup
	creates int
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: make(map[int]*model.BatchGroup)}
}

func (r *memBatchRepo) FindByYear(ctx context.Context, year int) (*model.BatchGroup, error) {
	batch, ok := r.batches[year]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *batch
	return &copied, nil
}

func (r *memBatchRepo) FindOrCreateByYear(ctx context.Context, year int) (*model.BatchGroup, error) {
	if batch, ok := r.batches[year]; ok {
		copied := *batch
		return &copied, nil
	}
	batch := &model.BatchGroup{ID: uuid.New(), Year: year}
	r.batches[year] = batch
	r.creates++
	copied := *batch
	return &copied, nil
}

type memPostRepo struct {
	posts map[uuid.UUID]*model.Post

	lastViewerBatchID *uuid.UUID
	lastFilter        string
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (r *memPostRepo) add(post *model.Post) *model.Post {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	copied := *post
	r.posts[post.ID] = &copied
	return post
}

func (r *memPostRepo) Create(ctx context.Context, post *model.Post) error {
	r.add(post)
	return nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *memPostRepo) FindVisible(ctx context.Context, viewerBatchID *uuid.UUID, filter string) ([]model.Post, error) {
	r.lastViewerBatchID = viewerBatchID
	r.lastFilter = filter

	var visible []model.Post
	for _, post := range r.posts {
		switch filter {
		case "public":
			if post.Visibility == model.VisibilityPublic {
				visible = append(visible, *post)
			}
		case "batch":
			if viewerBatchID != nil && post.Visibility == model.VisibilityBatch &&
				post.BatchGroupID != nil && *post.BatchGroupID == *viewerBatchID {
				visible = append(visible, *post)
			}
		default:
			if post.Visibility == model.VisibilityPublic {
				visible = append(visible, *post)
			} else if viewerBatchID != nil && post.BatchGroupID != nil && *post.BatchGroupID == *viewerBatchID {
				visible = append(visible, *post)
			}
		}
	}
	return visible, nil
}

func (r *memPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

type likeKey struct {
	userID uuid.UUID
	postID uuid.UUID
}

type memLikeRepo struct {
	likes map[likeKey]struct{}
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{likes: make(map[likeKey]struct{})}
}

func (r *memLikeRepo) Insert(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	key := likeKey{userID: userID, postID: postID}
	if _, ok := r.likes[key]; ok {
		return false, nil
	}
	r.likes[key] = struct{}{}
	return true, nil
}

func (r *memLikeRepo) Remove(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	key := likeKey{userID: userID, postID: postID}
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *memLikeRepo) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	for key := range r.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

type memCommentRepo struct {
	comments []model.Comment
}

func (r *memCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

type memConnectionRepo struct {
	connections map[uuid.UUID]*model.Connection

	// missBetween makes FindBetween report no row for that many calls,
	// standing in for a concurrent insert the pre-check cannot see.
	missBetween int
}

func newMemConnectionRepo() *memConnectionRepo {
	return &memConnectionRepo{connections: make(map[uuid.UUID]*model.Connection)}
}

func (r *memConnectionRepo) Create(ctx context.Context, connection *model.Connection) error {
	lo, hi := model.NormalizePair(connection.RequesterID, connection.AddresseeID)
	for _, existing := range r.connections {
		if existing.PairMinID == lo && existing.PairMaxID == hi {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	if connection.ID == uuid.Nil {
		connection.ID = uuid.New()
	}
	connection.PairMinID, connection.PairMaxID = lo, hi
	copied := *connection
	r.connections[connection.ID] = &copied
	return nil
}

func (r *memConnectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Connection, error) {
	connection, ok := r.connections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *connection
	return &copied, nil
}

func (r *memConnectionRepo) FindBetween(ctx context.Context, userA, userB uuid.UUID) (*model.Connection, error) {
	if r.missBetween > 0 {
		r.missBetween--
		return nil, nil
	}
	for _, connection := range r.connections {
		if (connection.RequesterID == userA && connection.AddresseeID == userB) ||
			(connection.RequesterID == userB && connection.AddresseeID == userA) {
			copied := *connection
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memConnectionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	connection, ok := r.connections[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	connection.Status = status
	return nil
}

func (r *memConnectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.connections, id)
	return nil
}

type memNotificationRepo struct {
	notifications []model.Notification
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *memNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	var found []model.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			found = append(found, r.notifications[i])
		}
	}
	if offset < len(found) {
		found = found[offset:]
	} else {
		found = nil
	}
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *memNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for i := range r.notifications {
		if r.notifications[i].UserID == userID && !r.notifications[i].Read {
			count++
		}
	}
	return count, nil
}

type memMessageRepo struct {
	messages []model.Message
}

func (r *memMessageRepo) Create(ctx context.Context, message *model.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memMessageRepo) History(ctx context.Context, userA, userB uuid.UUID) ([]model.Message, error) {
	var found []model.Message
	for _, message := range r.messages {
		if (message.SenderID == userA && message.ReceiverID == userB) ||
			(message.SenderID == userB && message.ReceiverID == userA) {
			found = append(found, message)
		}
	}
	return found, nil
}

func (r *memMessageRepo) MarkRead(ctx context.Context, from, to uuid.UUID) error {
	for i := range r.messages {
		if r.messages[i].SenderID == from && r.messages[i].ReceiverID == to {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *memMessageRepo) PartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var partners []uuid.UUID
	for _, message := range r.messages {
		var partner uuid.UUID
		switch userID {
		case message.SenderID:
			partner = message.ReceiverID
		case message.ReceiverID:
			partner = message.SenderID
		default:
			continue
		}
		if !seen[partner] {
			seen[partner] = true
			partners = append(partners, partner)
		}
	}
	return partners, nil
}

type recordingSearchService struct {
	indexed []string
	removed []string
}

func (s *recordingSearchService) IndexMember(user *model.User) error {
	s.indexed = append(s.indexed, user.ID.String())
	return nil
}

func (s *recordingSearchService) RemoveMember(id string) error {
	s.removed = append(s.removed, id)
	return nil
}

func (s *recordingSearchService) Search(query string) ([]dto.MemberDoc, error) {
	return nil, nil
}
