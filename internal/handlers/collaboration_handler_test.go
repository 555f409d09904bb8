package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCollabRepo struct {
	collabs  map[string]*models.Collaboration
	requests map[string]*models.CollaborationRequest
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{
		collabs:  make(map[string]*models.Collaboration),
		requests: make(map[string]*models.CollaborationRequest),
	}
}

func (f *fakeCollabRepo) CreateCollaboration(_ context.Context, c *models.Collaboration) error {
	c.ID = primitive.NewObjectID()
	c.Status = models.CollaborationOpen
	cp := *c
	f.collabs[c.ID.Hex()] = &cp
	return nil
}

func (f *fakeCollabRepo) GetCollaborationByID(_ context.Context, id string) (*models.Collaboration, error) {
	c, ok := f.collabs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCollabRepo) GetCollaborations(_ context.Context, status string, _, _ int64) ([]models.Collaboration, error) {
	var out []models.Collaboration
	for _, c := range f.collabs {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCollabRepo) SetCollaborationStatus(_ context.Context, id, status string) error {
	c, ok := f.collabs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCollabRepo) DeleteCollaboration(_ context.Context, id string) error {
	if _, ok := f.collabs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.collabs, id)
	for rid, r := range f.requests {
		if r.CollaborationID == id {
			delete(f.requests, rid)
		}
	}
	return nil
}

func (f *fakeCollabRepo) CreateRequest(_ context.Context, r *models.CollaborationRequest) error {
	r.ID = primitive.NewObjectID()
	r.Status = models.RequestPending
	cp := *r
	f.requests[r.ID.Hex()] = &cp
	if c, ok := f.collabs[r.CollaborationID]; ok {
		c.Requests++
	}
	return nil
}

func (f *fakeCollabRepo) GetRequestByID(_ context.Context, id string) (*models.CollaborationRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeCollabRepo) GetRequestsByCollaborationID(_ context.Context, collaborationID string) ([]models.CollaborationRequest, error) {
	var out []models.CollaborationRequest
	for _, r := range f.requests {
		if r.CollaborationID == collaborationID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeCollabRepo) SetRequestStatus(_ context.Context, id, status string) error {
	r, ok := f.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	r.Status = status
	return nil
}

func collabFixture(t *testing.T) (*CollaborationHandler, *fakeCollabRepo, *fakeNotificationRepo) {
	t.Helper()
	collabRepo := newFakeCollabRepo()
	notifRepo := &fakeNotificationRepo{}
	return NewCollaborationHandler(collabRepo, notifRepo), collabRepo, notifRepo
}

func seedCollaboration(t *testing.T, repo *fakeCollabRepo, ownerUID string) *models.Collaboration {
	t.Helper()
	c := &models.Collaboration{Title: "App del comedor", AuthorID: ownerUID, Skills: []string{"Go", "Flutter"}}
	require.NoError(t, repo.CreateCollaboration(context.Background(), c))
	return c
}

func TestSendRequest_NotifiesOwner(t *testing.T) {
	e := echo.New()
	h, collabRepo, notifRepo := collabFixture(t)
	collab := seedCollaboration(t, collabRepo, "owner-uid")

	body := models.SendCollaborationRequest{Message: "Sé Flutter y quiero sumarme.", ContactInfo: "@ana"}
	c, rec := request(e, http.MethodPost, "/collaborations/"+collab.ID.Hex()+"/requests", body, student("sender-uid", "s@uide.edu.ec"))
	c.SetParamNames("id")
	c.SetParamValues(collab.ID.Hex())

	require.NoError(t, h.SendRequest(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	stored, err := collabRepo.GetCollaborationByID(context.Background(), collab.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Requests)

	notifs := notifRepo.forRecipient("owner-uid")
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationTypeCollaboration, notifs[0].Type)
}

func TestSendRequest_ClosedCollaboration(t *testing.T) {
	e := echo.New()
	h, collabRepo, _ := collabFixture(t)
	collab := seedCollaboration(t, collabRepo, "owner-uid")
	require.NoError(t, collabRepo.SetCollaborationStatus(context.Background(), collab.ID.Hex(), models.CollaborationClosed))

	body := models.SendCollaborationRequest{Message: "¿Sigue abierto?"}
	c, _ := request(e, http.MethodPost, "/collaborations/"+collab.ID.Hex()+"/requests", body, student("sender-uid", "s@uide.edu.ec"))
	c.SetParamNames("id")
	c.SetParamValues(collab.ID.Hex())

	err := h.SendRequest(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestSendRequest_OwnCollaboration(t *testing.T) {
	e := echo.New()
	h, collabRepo, _ := collabFixture(t)
	owner := student("owner-uid", "o@uide.edu.ec")
	collab := seedCollaboration(t, collabRepo, owner.FirebaseUID)

	body := models.SendCollaborationRequest{Message: "Me uno a mí mismo."}
	c, _ := request(e, http.MethodPost, "/collaborations/"+collab.ID.Hex()+"/requests", body, owner)
	c.SetParamNames("id")
	c.SetParamValues(collab.ID.Hex())

	err := h.SendRequest(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAcceptRequest_NotifiesSender(t *testing.T) {
	e := echo.New()
	h, collabRepo, notifRepo := collabFixture(t)
	owner := student("owner-uid", "o@uide.edu.ec")
	collab := seedCollaboration(t, collabRepo, owner.FirebaseUID)

	req := &models.CollaborationRequest{CollaborationID: collab.ID.Hex(), SenderID: "sender-uid", Message: "Hola"}
	require.NoError(t, collabRepo.CreateRequest(context.Background(), req))

	c, rec := request(e, http.MethodPost, "/collaborations/requests/"+req.ID.Hex()+"/accept", nil, owner)
	c.SetParamNames("request_id")
	c.SetParamValues(req.ID.Hex())

	require.NoError(t, h.AcceptRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	stored, err := collabRepo.GetRequestByID(context.Background(), req.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, stored.Status)

	notifs := notifRepo.forRecipient("sender-uid")
	require.Len(t, notifs, 1)
	assert.Equal(t, "Solicitud aceptada", notifs[0].Title)
}

func TestDecideRequest_AlreadyDecided(t *testing.T) {
	e := echo.New()
	h, collabRepo, _ := collabFixture(t)
	owner := student("owner-uid", "o@uide.edu.ec")
	collab := seedCollaboration(t, collabRepo, owner.FirebaseUID)

	req := &models.CollaborationRequest{CollaborationID: collab.ID.Hex(), SenderID: "sender-uid", Message: "Hola"}
	require.NoError(t, collabRepo.CreateRequest(context.Background(), req))
	require.NoError(t, collabRepo.SetRequestStatus(context.Background(), req.ID.Hex(), models.RequestAccepted))

	c, _ := request(e, http.MethodPost, "/collaborations/requests/"+req.ID.Hex()+"/reject", nil, owner)
	c.SetParamNames("request_id")
	c.SetParamValues(req.ID.Hex())

	err := h.RejectRequest(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestGetRequests_OwnerOnly(t *testing.T) {
	e := echo.New()
	h, collabRepo, _ := collabFixture(t)
	collab := seedCollaboration(t, collabRepo, "owner-uid")

	c, _ := request(e, http.MethodGet, "/collaborations/"+collab.ID.Hex()+"/requests", nil, student("stranger", "s@uide.edu.ec"))
	c.SetParamNames("id")
	c.SetParamValues(collab.ID.Hex())

	err := h.GetRequests(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
