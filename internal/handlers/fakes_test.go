package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests. They mirror the
// store semantics the Mongo implementations provide: compare-and-swap
// status transitions, set-based like toggles and absent-status-is-pending.

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectRepo) CreateProject(_ context.Context, p *models.Project) error {
	p.ID = primitive.NewObjectID()
	p.Status = models.StatusPending
	p.CreatedAt = time.Now()
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	cp := *p
	f.projects[p.ID.Hex()] = &cp
	return nil
}

func (f *fakeProjectRepo) GetProjectByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) GetProjectsByStatus(_ context.Context, status string, _, _ int64) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.EffectiveStatus() == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) GetProjectsByAuthorID(_ context.Context, authorID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) UpdateProject(_ context.Context, id string, p *models.Project) error {
	stored, ok := f.projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.Category = p.Category
	stored.OtherCategory = p.OtherCategory
	stored.Technologies = p.Technologies
	stored.ImageURLs = p.ImageURLs
	stored.VideoURL = p.VideoURL
	stored.DevelopmentPDF = p.DevelopmentPDF
	stored.IsEcological = p.IsEcological
	stored.Status = models.StatusPending
	stored.RejectionReason = ""
	stored.RejectionMessage = ""
	return nil
}

func (f *fakeProjectRepo) DeleteProject(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) SetStatus(_ context.Context, id, from, to, reason, message string) error {
	p, ok := f.projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if p.EffectiveStatus() != from {
		return repositories.ErrStatusConflict
	}
	p.Status = to
	if to == models.StatusRejected {
		p.RejectionReason = reason
		p.RejectionMessage = message
	}
	return nil
}

func (f *fakeProjectRepo) AddLike(_ context.Context, id, uid string) (bool, error) {
	p, ok := f.projects[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for _, u := range p.LikedBy {
		if u == uid {
			return false, nil
		}
	}
	p.LikedBy = append(p.LikedBy, uid)
	p.Likes++
	return true, nil
}

func (f *fakeProjectRepo) RemoveLike(_ context.Context, id, uid string) (bool, error) {
	p, ok := f.projects[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for i, u := range p.LikedBy {
		if u == uid {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			p.Likes--
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) IncrementViews(_ context.Context, id string) error {
	p, ok := f.projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Views++
	return nil
}

func (f *fakeProjectRepo) CountByAuthorEmail(_ context.Context, email string) (int64, error) {
	var n int64
	for _, p := range f.projects {
		for _, a := range p.Authors {
			if a == email {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeProjectRepo) SumLikesByAuthorEmail(_ context.Context, email string) (int, error) {
	total := 0
	for _, p := range f.projects {
		for _, a := range p.Authors {
			if a == email {
				total += p.Likes
				break
			}
		}
	}
	return total, nil
}

type fakeTopicRepo struct {
	topics map[string]*models.ForumTopic
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: make(map[string]*models.ForumTopic)}
}

func (f *fakeTopicRepo) CreateTopic(_ context.Context, t *models.ForumTopic) error {
	t.ID = primitive.NewObjectID()
	t.Status = models.StatusPending
	t.CreatedAt = time.Now()
	if t.LikedBy == nil {
		t.LikedBy = []string{}
	}
	cp := *t
	f.topics[t.ID.Hex()] = &cp
	return nil
}

func (f *fakeTopicRepo) GetTopicByID(_ context.Context, id string) (*models.ForumTopic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTopicRepo) GetTopicsByStatus(_ context.Context, status string, _, _ int64) ([]models.ForumTopic, error) {
	var out []models.ForumTopic
	for _, t := range f.topics {
		if t.EffectiveStatus() == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTopicRepo) UpdateTopic(_ context.Context, id string, t *models.ForumTopic) error {
	stored, ok := f.topics[id]
	if !ok {
		return repositories.ErrNotFound
	}
	now := time.Now()
	stored.Title = t.Title
	stored.Content = t.Content
	stored.Tag = t.Tag
	stored.IsEdited = true
	stored.EditedAt = &now
	return nil
}

func (f *fakeTopicRepo) DeleteTopic(_ context.Context, id string) error {
	if _, ok := f.topics[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeTopicRepo) SetStatus(_ context.Context, id, from, to, reason, message string) error {
	t, ok := f.topics[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if t.EffectiveStatus() != from {
		return repositories.ErrStatusConflict
	}
	t.Status = to
	if to == models.StatusRejected {
		t.RejectionReason = reason
		t.RejectionMessage = message
	}
	return nil
}

func (f *fakeTopicRepo) AddLike(_ context.Context, id, uid string) (bool, error) {
	t, ok := f.topics[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for _, u := range t.LikedBy {
		if u == uid {
			return false, nil
		}
	}
	t.LikedBy = append(t.LikedBy, uid)
	t.Likes++
	return true, nil
}

func (f *fakeTopicRepo) RemoveLike(_ context.Context, id, uid string) (bool, error) {
	t, ok := f.topics[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for i, u := range t.LikedBy {
		if u == uid {
			t.LikedBy = append(t.LikedBy[:i], t.LikedBy[i+1:]...)
			t.Likes--
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTopicRepo) BumpRepliesCount(_ context.Context, id string, delta int) error {
	t, ok := f.topics[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.RepliesCount += delta
	if delta > 0 {
		now := time.Now()
		t.LastReplyAt = &now
	}
	return nil
}

type fakeReplyRepo struct {
	replies map[string]*models.ForumReply
	deleted []string // deletion order across all DeleteReplies calls
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{replies: make(map[string]*models.ForumReply)}
}

func (f *fakeReplyRepo) CreateReply(_ context.Context, r *models.ForumReply) error {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	if r.LikedBy == nil {
		r.LikedBy = []string{}
	}
	cp := *r
	f.replies[r.ID.Hex()] = &cp
	return nil
}

func (f *fakeReplyRepo) GetReplyByID(_ context.Context, id string) (*models.ForumReply, error) {
	r, ok := f.replies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReplyRepo) GetRepliesByTopicID(_ context.Context, topicID string) ([]models.ForumReply, error) {
	var out []models.ForumReply
	for _, r := range f.replies {
		if r.TopicID == topicID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeReplyRepo) UpdateReply(_ context.Context, id, content string) error {
	r, ok := f.replies[id]
	if !ok {
		return repositories.ErrNotFound
	}
	now := time.Now()
	r.Content = content
	r.IsEdited = true
	r.EditedAt = &now
	return nil
}

func (f *fakeReplyRepo) DeleteReplies(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(f.replies, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

func (f *fakeReplyRepo) DeleteRepliesByTopicID(_ context.Context, topicID string) error {
	for id, r := range f.replies {
		if r.TopicID == topicID {
			delete(f.replies, id)
		}
	}
	return nil
}

func (f *fakeReplyRepo) AddLike(_ context.Context, id, uid string) (bool, error) {
	r, ok := f.replies[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for _, u := range r.LikedBy {
		if u == uid {
			return false, nil
		}
	}
	r.LikedBy = append(r.LikedBy, uid)
	r.Likes++
	return true, nil
}

func (f *fakeReplyRepo) RemoveLike(_ context.Context, id, uid string) (bool, error) {
	r, ok := f.replies[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for i, u := range r.LikedBy {
		if u == uid {
			r.LikedBy = append(r.LikedBy[:i], r.LikedBy[i+1:]...)
			r.Likes--
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users  []*models.User
	nextID uint
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{nextID: 1}
	for _, u := range users {
		_ = f.CreateUser(u)
	}
	return f
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(u *models.User) error {
	for i, stored := range f.users {
		if stored.ID == u.ID {
			f.users[i] = u
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateRole(id uint, role string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(_ context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID string) (int64, error) {
	var n int64
	for _, notif := range f.created {
		if notif.RecipientID == recipientID && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id, recipientID string) error {
	for _, n := range f.created {
		if n.ID.Hex() == id && n.RecipientID == recipientID {
			n.Read = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID string) error {
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) forRecipient(recipientID string) []*models.Notification {
	var out []*models.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type fakeBadgeRepo struct {
	unlocked map[string]bool // userID + "/" + badgeID
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{unlocked: make(map[string]bool)}
}

func (f *fakeBadgeRepo) Unlock(_ context.Context, userID, badgeID, name string) (bool, error) {
	key := userID + "/" + badgeID
	if f.unlocked[key] {
		return false, nil
	}
	f.unlocked[key] = true
	return true, nil
}

func (f *fakeBadgeRepo) GetBadgesByUserID(_ context.Context, userID string) ([]models.Badge, error) {
	var out []models.Badge
	for key := range f.unlocked {
		if strings.HasPrefix(key, userID+"/") {
			out = append(out, models.Badge{UserID: userID, BadgeID: strings.TrimPrefix(key, userID+"/")})
		}
	}
	return out, nil
}

// request builds an authenticated echo context the way the auth middleware
// leaves it: the resolved user stored under the "user" key.
func request(e *echo.Echo, method, target string, body any, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
		c.Set("firebaseUID", user.FirebaseUID)
	}
	return c, rec
}

func decodeBody(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
