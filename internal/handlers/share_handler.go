package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/services"
)

// ShareHandler handles data sharing grant endpoints.
type ShareHandler struct {
	shareService services.ShareServicer
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService services.ShareServicer) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

type createShareRequest struct {
	TargetEmail string                `json:"targetEmail" binding:"required,email"`
	Scope       models.ShareScope     `json:"scope" binding:"omitempty,share_scope"`
	ScopeType   models.ShareScopeType `json:"scopeType" binding:"required,share_scope_type"`
	Label       string                `json:"label" binding:"omitempty,max=100"`
}

// CreateShare godoc
//
//	@Summary		Grant another user access to your data
//	@Tags			shares
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createShareRequest	true	"Share details"
//	@Success		201		{object}	models.Share
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shares [post]
func (h *ShareHandler) CreateShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	share, err := h.shareService.CreateShare(userID, req.TargetEmail, req.Scope, req.ScopeType, req.Label)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, share)
}

// GetShares godoc
//
//	@Summary		List shares granted and received
//	@Tags			shares
//	@Produce		json
//	@Success		200	{object}	services.ShareList
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shares [get]
func (h *ShareHandler) GetShares(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shares, err := h.shareService.GetShares(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, shares)
}

// DeleteShare godoc
//
//	@Summary		Revoke a share
//	@Tags			shares
//	@Produce		json
//	@Param			id	path		int	true	"Share ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shares/{id} [delete]
func (h *ShareHandler) DeleteShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shareID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.shareService.DeleteShare(userID, shareID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Share revoked"})
}
