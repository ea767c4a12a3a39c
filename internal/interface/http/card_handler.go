package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/internal/application"
	"github.com/oksasatya/cardvault/internal/domain/entity"
	"github.com/oksasatya/cardvault/internal/interface/middleware"
	"github.com/oksasatya/cardvault/pkg/response"
	"github.com/oksasatya/cardvault/pkg/validation"
)

type CardHandler struct {
	Svc    *application.CardService
	Logger *logrus.Logger
}

func NewCardHandler(svc *application.CardService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{Svc: svc, Logger: logger}
}

// cardResponse exposes display fields only. The full number and CVV are
// write-only and never serialized.
type cardResponse struct {
	ID           string `json:"id"`
	NumberMasked string `json:"card_number_masked"`
	HolderName   string `json:"holder_name"`
	ExpiryDate   string `json:"expiry_date"`
	TotalLimit   int64  `json:"total_limit"`
	AvailLimit   int64  `json:"available_limit"`
	Outstanding  int64  `json:"outstanding_amount"`
	MinimumDue   int64  `json:"minimum_due"`
	DueDate      string `json:"due_date"`
	IsBlocked    bool   `json:"is_blocked"`
}

func toCardResponse(card *entity.CreditCard) cardResponse {
	return cardResponse{
		ID:           card.ID,
		NumberMasked: card.NumberMasked,
		HolderName:   card.HolderName,
		ExpiryDate:   card.ExpiryDate,
		TotalLimit:   card.TotalLimit,
		AvailLimit:   card.AvailLimit,
		Outstanding:  card.Outstanding,
		MinimumDue:   card.MinimumDue,
		DueDate:      card.DueDate,
		IsBlocked:    card.IsBlocked,
	}
}

type createCardRequest struct {
	Number     string `json:"card_number" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	TotalLimit int64  `json:"total_limit"`
	DueDate    string `json:"due_date"`
}

type updateCardRequest struct {
	IsBlocked  *bool  `json:"is_blocked"`
	HolderName string `json:"holder_name"`
	ExpiryDate string `json:"expiry_date"`
}

// List GET /api/cards
func (h *CardHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	cards, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("list cards failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, toCardResponse(card))
	}
	response.Success(c, http.StatusOK, out, "cards")
}

// Create POST /api/cards
func (h *CardHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}
	card, err := h.Svc.Create(c.Request.Context(), uid, application.CreateCardInput{
		Number:     req.Number,
		CVV:        req.CVV,
		HolderName: req.HolderName,
		ExpiryDate: req.ExpiryDate,
		TotalLimit: req.TotalLimit,
		DueDate:    req.DueDate,
	})
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	response.Success(c, http.StatusCreated, toCardResponse(card), "card created")
}

// Update PUT /api/cards/:id
// Partial update; absent fields keep their value. A card owned by another
// user reports not found, identical to a missing card.
func (h *CardHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	card, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.UpdateCardInput{
		IsBlocked:  req.IsBlocked,
		HolderName: req.HolderName,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		if errors.Is(err, application.ErrCardNotFound) {
			response.Error[any](c, http.StatusNotFound, "not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("update card failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	response.Success(c, http.StatusOK, toCardResponse(card), "card updated")
}

// Delete DELETE /api/cards/:id
func (h *CardHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, application.ErrCardNotFound) {
			response.Error[any](c, http.StatusNotFound, "not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("delete card failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
