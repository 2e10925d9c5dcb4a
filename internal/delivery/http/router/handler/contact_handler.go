package handler

import (
	"log/slog"
	"net/http"
	"time"

	"contacts/internal/delivery/http/response"
	"contacts/internal/domain/entity"
	"contacts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// contactRequest is the wire shape shared by create and update calls. The
// update body additionally carries the contact id for the path check.
type contactRequest struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName" validate:"required"`
	LastName    string    `json:"lastName" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category" validate:"required"`
	Subcategory string    `json:"subcategory"`
	BirthDate   time.Time `json:"birthDate"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	UserID      uuid.UUID `json:"userId"`
}

type contactResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	BirthDate   time.Time `json:"birthDate"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContactHandler holds dependencies for contact CRUD handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles the request for all contacts.
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactResponse(contact))
	}

	return response.Success(c, http.StatusOK, out, "Contacts retrieved successfully")
}

// Get handles the request for a single contact by id.
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	contact, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactResponse(contact), "Contact retrieved successfully")
}

// Create handles the contact creation request.
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	contact, err := h.uc.Create(c.Request().Context(), toContactInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toContactResponse(contact), "Contact created successfully")
}

// Update handles the contact update request.
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateContactInput{
		ID:           req.ID,
		ContactInput: *toContactInput(&req),
	}
	if err := h.uc.Update(c.Request().Context(), id, input); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// Delete handles the contact deletion request.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid contact id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func toContactInput(req *contactRequest) *usecase.ContactInput {
	return &usecase.ContactInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		BirthDate:   req.BirthDate,
		City:        req.City,
		Country:     req.Country,
		UserID:      req.UserID,
	}
}

func toContactResponse(contact *entity.Contact) contactResponse {
	return contactResponse{
		ID:          contact.ID,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Email:       contact.Email,
		Phone:       contact.Phone,
		Category:    contact.Category,
		Subcategory: contact.Subcategory,
		BirthDate:   contact.BirthDate,
		City:        contact.City,
		Country:     contact.Country,
		UserID:      contact.UserID,
		CreatedAt:   contact.CreatedAt,
		UpdatedAt:   contact.UpdatedAt,
	}
}
