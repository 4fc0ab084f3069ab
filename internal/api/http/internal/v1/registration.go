package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/pkg/logger"
)

func (h *Handler) initEventRoutes(api *gin.RouterGroup) {
	event := api.Group("/event")
	event.POST("/register", h.userIdentityMiddleware, h.submitRegistration)
	event.GET("/registration/me", h.userIdentityMiddleware, h.getMyRegistration)
	event.GET("/registration/receipt", h.userIdentityMiddleware, h.getMyReceipt)

	adminEvent := api.Group("/admin/event", h.adminIdentityMiddleware)
	adminEvent.GET("/registrations", h.listRegistrations)
	adminEvent.PUT("/registrations/:id/status", h.updateRegistrationStatus)
	adminEvent.GET("/registrations/:id/receipt", h.getRegistrationReceipt)
}

type submitRegistrationRequest struct {
	Name             string `form:"name" binding:"required,min=1,max=120"`
	Batch            string `form:"batch" binding:"required,batchyear"`
	Contact          string `form:"contact" binding:"required,phone10"`
	Email            string `form:"email" binding:"required,email"`
	LinkedIn         string `form:"linkedin" binding:"omitempty,url,max=255"`
	PaymentRef       string `form:"paymentRef" binding:"omitempty,max=120"`
	ComingWithFamily bool   `form:"comingWithFamily"`
	FamilyMembers    string `form:"familyMembers" binding:"omitempty"`
}

// @Summary Submit a registration
// @Tags Event
// @Description Creates the caller's registration. Exactly one registration may exist per identity.
// @Accept mpfd
// @Produce json
// @Param name formData string true "Full name"
// @Param batch formData string true "Batch year"
// @Param contact formData string true "10-digit contact number"
// @Param email formData string true "Contact email"
// @Param comingWithFamily formData boolean false "Attending with family"
// @Param familyMembers formData string false "JSON array of {name, relation}"
// @Param receipt formData file true "Payment receipt image"
// @Success 201 {object} domain.Registration
// @Failure 400 {object} validationErrorResponse
// @Failure 401 {object} messageResponse
// @Failure 409 {object} messageResponse
// @Failure 413 {object} messageResponse
// @Security UserAuth
// @Router /event/register [post]
func (h *Handler) submitRegistration(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.Upload.MaxBytes)

	var req submitRegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			newErrorResponse(c, http.StatusRequestEntityTooLarge, "Receipt image too large")
			return
		}
		bindingErrorResponse(c, err)
		return
	}

	var familyMembers []domain.FamilyMember
	if req.FamilyMembers != "" {
		if err := json.Unmarshal([]byte(req.FamilyMembers), &familyMembers); err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid familyMembers JSON")
			return
		}
	}

	receipt, err := readReceipt(c, h.config.Upload.MaxBytes)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	registration, err := h.services.Registrations.Submit(c.Request.Context(), identity, service.SubmitRegistrationInput{
		Name:             req.Name,
		Batch:            req.Batch,
		Contact:          req.Contact,
		Email:            req.Email,
		LinkedIn:         req.LinkedIn,
		PaymentRef:       req.PaymentRef,
		ComingWithFamily: req.ComingWithFamily,
		FamilyMembers:    familyMembers,
		Receipt:          receipt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			newErrorResponse(c, http.StatusConflict, "You have already registered with this Google account.")
		case errors.Is(err, service.ErrReceiptRequired),
			errors.Is(err, service.ErrReceiptNotImage),
			errors.Is(err, service.ErrInvalidFamilyMember):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			logger.Error("submit registration failed", zap.Error(err))
			newErrorResponse(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusCreated, registration)
}

func readReceipt(c *gin.Context, maxBytes int64) (*domain.Receipt, error) {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return nil, errors.New("receipt image is required")
	}

	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("receipt image exceeds %d bytes", maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read receipt image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("could not read receipt image")
	}

	return &domain.Receipt{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	}, nil
}

// @Summary Fetch own registration
// @Tags Event
// @Produce json
// @Success 200 {object} domain.Registration
// @Failure 401 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Security UserAuth
// @Router /event/registration/me [get]
func (h *Handler) getMyRegistration(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	registration, err := h.services.Registrations.GetOwn(c.Request.Context(), identity.Subject)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			newErrorResponse(c, http.StatusNotFound, "No registration found")
			return
		}
		logger.Error("get own registration failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Failed to fetch registration")
		return
	}

	c.JSON(http.StatusOK, registration)
}

// @Summary Fetch own receipt
// @Tags Event
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 401 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Security UserAuth
// @Router /event/registration/receipt [get]
func (h *Handler) getMyReceipt(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Missing user identity")
		return
	}

	receipt, err := h.services.Registrations.GetOwnReceipt(c.Request.Context(), identity.Subject)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Receipt not found")
			return
		}
		logger.Error("get own receipt failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	writeReceipt(c, receipt)
}

// @Summary List registrations
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {array} domain.Registration
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Security AdminAuth
// @Router /admin/event/registrations [get]
func (h *Handler) listRegistrations(c *gin.Context) {
	var status *domain.RegistrationStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.RegistrationStatus(raw)
		if !parsed.IsValid() {
			newErrorResponse(c, http.StatusBadRequest, "Invalid status")
			return
		}
		status = &parsed
	}

	registrations, err := h.services.Registrations.List(c.Request.Context(), status)
	if err != nil {
		logger.Error("list registrations failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, registrations)
}

type updateStatusRequest struct {
	Status domain.RegistrationStatus `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

// @Summary Update registration status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param input body updateStatusRequest true "New status"
// @Success 200 {object} domain.Registration
// @Failure 400 {object} messageResponse
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Security AdminAuth
// @Router /admin/event/registrations/{id}/status [put]
func (h *Handler) updateRegistrationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid registration id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	adminUsername, err := getAdminUsername(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Admin token missing")
		return
	}

	registration, err := h.services.Registrations.UpdateStatus(c.Request.Context(), id, req.Status, adminUsername)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Registration not found")
			return
		}
		logger.Error("update registration status failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, registration)
}

// @Summary Fetch a registration's receipt
// @Tags Admin
// @Produce octet-stream
// @Param id path string true "Registration id"
// @Success 200 {file} binary
// @Failure 401 {object} messageResponse
// @Failure 403 {object} messageResponse
// @Failure 404 {object} messageResponse
// @Security AdminAuth
// @Router /admin/event/registrations/{id}/receipt [get]
func (h *Handler) getRegistrationReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid registration id")
		return
	}

	receipt, err := h.services.Registrations.GetReceiptByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			newErrorResponse(c, http.StatusNotFound, "Receipt not found")
			return
		}
		logger.Error("get receipt by id failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Server error")
		return
	}

	writeReceipt(c, receipt)
}

func writeReceipt(c *gin.Context, receipt *domain.Receipt) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", receipt.Filename))
	c.Data(http.StatusOK, receipt.ContentType, receipt.Data)
}
