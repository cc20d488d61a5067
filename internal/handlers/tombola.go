package handlers

import (
	"errors"
	"net/http"

	"tombola/internal/auth"
	"tombola/internal/models"
	"tombola/internal/response"
	"tombola/internal/tombola"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

type RegisterRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	PhoneNumber *string `json:"phoneNumber"`
	QRCodeID    string  `json:"qrCodeId" binding:"required"`
}

type DrawRequest struct {
	PrizeID string `json:"prizeId" binding:"required"`
}

type PrizeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
}

// QRCodeRequest creates either the QR code named by ID or Count generated ones.
type QRCodeRequest struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// QRCodeResponse is a QR code with the participation URL to encode in it.
type QRCodeResponse struct {
	models.QRCode
	URL string `json:"url"`
}

// TombolaHandler exposes the raffle service over HTTP.
type TombolaHandler struct {
	svc       *tombola.Service
	publicURL string
}

func NewTombolaHandler(svc *tombola.Service, publicURL string) *TombolaHandler {
	return &TombolaHandler{svc: svc, publicURL: publicURL}
}

// RegisterRoutes mounts the raffle endpoints on rg. admin guards the
// administrative ones.
func (h *TombolaHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("/participants", h.Register)
	rg.GET("/participants", admin, h.ListParticipants)

	rg.GET("/winners", h.ListWinners)
	rg.GET("/winners/:id", h.GetWinner)
	rg.POST("/winners", admin, h.Draw)
	rg.DELETE("/winners/:id", admin, h.CancelDraw)

	rg.GET("/prizes", h.ListPrizes)
	rg.GET("/prizes/:id", h.GetPrize)
	rg.POST("/prizes", admin, h.CreatePrize)
	rg.PUT("/prizes/:id", admin, h.UpdatePrize)
	rg.DELETE("/prizes/:id", admin, h.DeletePrize)

	rg.GET("/qrcodes/:id", h.GetQRCode)
	rg.GET("/qrcodes", admin, h.ListQRCodes)
	rg.POST("/qrcodes", admin, h.CreateQRCodes)
	rg.DELETE("/qrcodes/:id", admin, h.DeleteQRCode)

	rg.GET("/stats", admin, h.Stats)
}

// @Summary		Register a participant
// @Description	Registers a participant with an unused QR code. The QR code is consumed.
// @Tags			tombola
// @Accept			json
// @Produce		json
// @Param			participant	body		RegisterRequest			true	"Participation form"
// @Success		201			{object}	models.Participant
// @Failure		400			{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_QR_CODE, QR_CODE_ALREADY_USED"
// @Failure		500			{object}	response.ErrorResponse	"INTERNAL_ERROR"
// @Router			/tombola/participants [post]
func (h *TombolaHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.svc.Register(c.Request.Context(), tombola.RegisterInput{
		QRCodeID:    req.QRCodeID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		var te *tombola.Error
		if errors.As(err, &te) && te.Code == tombola.CodeQRCodeNotFound {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Code: "INVALID_QR_CODE", Message: te.Message})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary		List participants
// @Tags			tombola
// @Produce		json
// @Success		200	{array}		models.Participant
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/participants [get]
func (h *TombolaHandler) ListParticipants(c *gin.Context) {
	list, err := h.svc.ListParticipants(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary		Draw a winner
// @Description	Picks a participant who has not won yet, uniformly at random, for the given prize
// @Tags			tombola
// @Accept			json
// @Produce		json
// @Param			draw	body		DrawRequest				true	"Prize to award"
// @Success		201		{object}	models.Winner
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, NO_ELIGIBLE_PARTICIPANTS, ALREADY_WON"
// @Failure		404		{object}	response.ErrorResponse	"PRIZE_NOT_FOUND, PARTICIPANT_NOT_FOUND"
// @Failure		401		{object}	response.ErrorResponse
// @Router			/tombola/winners [post]
func (h *TombolaHandler) Draw(c *gin.Context) {
	var req DrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin := auth.AdminFromContext(c)
	w, err := h.svc.Draw(c.Request.Context(), tombola.DrawInput{PrizeID: req.PrizeID, DrawnBy: admin})
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Infof("Draw by %s: prize %s won by participant %s", admin, w.PrizeID, w.ParticipantID)
	c.JSON(http.StatusCreated, w)
}

// @Summary		Cancel a draw
// @Description	Deletes the winner record; the participant becomes eligible again
// @Tags			tombola
// @Produce		json
// @Param			id	path		string	true	"Winner ID"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"WINNER_NOT_FOUND"
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/winners/{id} [delete]
func (h *TombolaHandler) CancelDraw(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.CancelDraw(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	logger.Infof("Draw %s cancelled by %s", id, auth.AdminFromContext(c))
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Draw cancelled"})
}

// @Summary		List winners
// @Tags			tombola
// @Produce		json
// @Success		200	{array}	models.Winner
// @Router			/tombola/winners [get]
func (h *TombolaHandler) ListWinners(c *gin.Context) {
	list, err := h.svc.ListWinners(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary		Get a winner
// @Tags			tombola
// @Produce		json
// @Param			id	path		string	true	"Winner ID"
// @Success		200	{object}	models.Winner
// @Failure		404	{object}	response.ErrorResponse	"WINNER_NOT_FOUND"
// @Router			/tombola/winners/{id} [get]
func (h *TombolaHandler) GetWinner(c *gin.Context) {
	w, err := h.svc.GetWinner(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary		List available prizes
// @Description	Prizes with a quantity above zero, newest first
// @Tags			prizes
// @Produce		json
// @Success		200	{array}	models.Prize
// @Router			/tombola/prizes [get]
func (h *TombolaHandler) ListPrizes(c *gin.Context) {
	list, err := h.svc.ListPrizes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary		Get a prize
// @Tags			prizes
// @Produce		json
// @Param			id	path		string	true	"Prize ID"
// @Success		200	{object}	models.Prize
// @Failure		404	{object}	response.ErrorResponse	"PRIZE_NOT_FOUND"
// @Router			/tombola/prizes/{id} [get]
func (h *TombolaHandler) GetPrize(c *gin.Context) {
	p, err := h.svc.GetPrize(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary		Create a prize
// @Tags			prizes
// @Accept			json
// @Produce		json
// @Param			prize	body		PrizeRequest	true	"Prize"
// @Success		201		{object}	models.Prize
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401		{object}	response.ErrorResponse
// @Router			/tombola/prizes [post]
func (h *TombolaHandler) CreatePrize(c *gin.Context) {
	var req PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.svc.CreatePrize(c.Request.Context(), tombola.PrizeInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary		Update a prize
// @Tags			prizes
// @Accept			json
// @Produce		json
// @Param			id		path		string			true	"Prize ID"
// @Param			prize	body		PrizeRequest	true	"Prize"
// @Success		200		{object}	models.Prize
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		404		{object}	response.ErrorResponse	"PRIZE_NOT_FOUND"
// @Failure		401		{object}	response.ErrorResponse
// @Router			/tombola/prizes/{id} [put]
func (h *TombolaHandler) UpdatePrize(c *gin.Context) {
	var req PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.svc.UpdatePrize(c.Request.Context(), c.Param("id"), tombola.PrizeInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary		Delete a prize
// @Tags			prizes
// @Produce		json
// @Param			id	path		string	true	"Prize ID"
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"PRIZE_HAS_WINNERS"
// @Failure		404	{object}	response.ErrorResponse	"PRIZE_NOT_FOUND"
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/prizes/{id} [delete]
func (h *TombolaHandler) DeletePrize(c *gin.Context) {
	if err := h.svc.DeletePrize(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Prize deleted"})
}

// @Summary		Get a QR code
// @Description	Used by the participation page to check a scanned code before showing the form
// @Tags			qrcodes
// @Produce		json
// @Param			id	path		string	true	"QR code ID"
// @Success		200	{object}	QRCodeResponse
// @Failure		404	{object}	response.ErrorResponse	"QR_CODE_NOT_FOUND"
// @Router			/tombola/qrcodes/{id} [get]
func (h *TombolaHandler) GetQRCode(c *gin.Context) {
	qr, err := h.svc.GetQRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	// The public view does not disclose who registered.
	qr.Participant = nil
	c.JSON(http.StatusOK, h.qrResponse(qr))
}

// @Summary		List QR codes
// @Tags			qrcodes
// @Produce		json
// @Success		200	{array}		QRCodeResponse
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/qrcodes [get]
func (h *TombolaHandler) ListQRCodes(c *gin.Context) {
	list, err := h.svc.ListQRCodes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.qrResponses(list))
}

// @Summary		Create QR codes
// @Description	Creates the QR code named by id, or count generated ones (1 to 500)
// @Tags			qrcodes
// @Accept			json
// @Produce		json
// @Param			request	body		QRCodeRequest	true	"id or count"
// @Success		201		{array}		QRCodeResponse
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, QR_CODE_EXISTS"
// @Failure		401		{object}	response.ErrorResponse
// @Router			/tombola/qrcodes [post]
func (h *TombolaHandler) CreateQRCodes(c *gin.Context) {
	var req QRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var (
		created []models.QRCode
		err     error
	)
	if req.ID != "" {
		var qr models.QRCode
		qr, err = h.svc.CreateQRCode(c.Request.Context(), req.ID)
		created = []models.QRCode{qr}
	} else {
		created, err = h.svc.CreateQRCodes(c.Request.Context(), req.Count)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Infof("%s created %d QR code(s)", auth.AdminFromContext(c), len(created))
	c.JSON(http.StatusCreated, h.qrResponses(created))
}

// @Summary		Delete a QR code
// @Tags			qrcodes
// @Produce		json
// @Param			id	path		string	true	"QR code ID"
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"QR_CODE_IN_USE"
// @Failure		404	{object}	response.ErrorResponse	"QR_CODE_NOT_FOUND"
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/qrcodes/{id} [delete]
func (h *TombolaHandler) DeleteQRCode(c *gin.Context) {
	if err := h.svc.DeleteQRCode(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "QR code deleted"})
}

// @Summary		Raffle statistics
// @Tags			tombola
// @Produce		json
// @Success		200	{object}	tombola.Stats
// @Failure		401	{object}	response.ErrorResponse
// @Router			/tombola/stats [get]
func (h *TombolaHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *TombolaHandler) qrResponse(qr models.QRCode) QRCodeResponse {
	return QRCodeResponse{QRCode: qr, URL: tombola.ParticipationURL(h.publicURL, qr.ID)}
}

func (h *TombolaHandler) qrResponses(list []models.QRCode) []QRCodeResponse {
	out := make([]QRCodeResponse, 0, len(list))
	for _, qr := range list {
		out = append(out, h.qrResponse(qr))
	}
	return out
}
