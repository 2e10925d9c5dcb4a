package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"contacts/internal/domain/entity"
	domainerrors "contacts/internal/domain/errors"
	mockUsecase "contacts/internal/mocks/usecase"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedContact(id uuid.UUID) *entity.Contact {
	return &entity.Contact{
		ID:        id,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Category:  "Business",
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		UserID:    uuid.New(),
	}
}

func TestContactHandler_List(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts", "")

	uc.EXPECT().
		List(mock.Anything).
		Return([]*entity.Contact{storedContact(uuid.New())}, nil)

	err := h.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
}

func TestContactHandler_Get(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	id := uuid.New()
	c, rec := newTestContext(t, http.MethodGet, "/api/contacts/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	uc.EXPECT().Get(mock.Anything, id).Return(storedContact(id), nil)

	err := h.Get(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.String())
}

func TestContactHandler_Get_InvalidID(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodGet, "/api/contacts/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestContactHandler_Get_NotFound(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	id := uuid.New()
	c, _ := newTestContext(t, http.MethodGet, "/api/contacts/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	uc.EXPECT().Get(mock.Anything, id).Return(nil, domainerrors.ErrContactNotFound)

	err := h.Get(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactHandler_Create(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	userID := uuid.New()
	body := `{
		"firstName": "Alice",
		"lastName": "Smith",
		"email": "alice@example.com",
		"category": "Business",
		"userId": "` + userID.String() + `"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/api/contacts", body)

	created := storedContact(uuid.New())
	uc.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*usecase.ContactInput")).
		RunAndReturn(func(ctx context.Context, input *usecase.ContactInput) (*entity.Contact, error) {
			assert.Equal(t, "alice@example.com", input.Email)
			assert.Equal(t, userID, input.UserID)

			return created, nil
		})

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID.String())
}

func TestContactHandler_Update(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	id := uuid.New()
	body := `{
		"id": "` + id.String() + `",
		"firstName": "Alice",
		"lastName": "Smith",
		"email": "alice@example.com",
		"category": "Business"
	}`
	c, rec := newTestContext(t, http.MethodPut, "/api/contacts/"+id.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	uc.EXPECT().
		Update(mock.Anything, id, mock.AnythingOfType("*usecase.UpdateContactInput")).
		Return(nil)

	err := h.Update(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestContactHandler_Delete(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	id := uuid.New()
	c, rec := newTestContext(t, http.MethodDelete, "/api/contacts/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	uc.EXPECT().Delete(mock.Anything, id).Return(nil)

	err := h.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestContactHandler_Delete_NotFound(t *testing.T) {
	uc := mockUsecase.NewMockContactUsecase(t)
	h := NewContactHandler(uc, testLogger())

	id := uuid.New()
	c, _ := newTestContext(t, http.MethodDelete, "/api/contacts/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	uc.EXPECT().Delete(mock.Anything, id).Return(domainerrors.ErrContactNotFound)

	err := h.Delete(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}
