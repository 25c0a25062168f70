package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/dto"
	"github.com/SscSPs/currency_convertor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles the JSON API over the conversion form.
type conversionHandler struct {
	formService portssvc.ConversionFormSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(fs portssvc.ConversionFormSvcFacade) *conversionHandler {
	return &conversionHandler{formService: fs}
}

// registerConversionRoutes registers routes related to the conversion form.
func registerConversionRoutes(rg *gin.RouterGroup, formService portssvc.ConversionFormSvcFacade) {
	h := newConversionHandler(formService)

	conversion := rg.Group("/conversion")
	{
		conversion.GET("", h.getState)
		conversion.PUT("/amount", h.updateAmount)
		conversion.PUT("/from", h.selectFrom)
		conversion.PUT("/to", h.selectTo)
		conversion.POST("/reverse", h.reverse)
		conversion.POST("/submit", h.submit)
		conversion.DELETE("", h.clear)
	}
}

// getState godoc
// @Summary Get the conversion form
// @Description Returns the amount, the selected currencies and the last conversion
// @Tags conversion
// @Produce  json
// @Success 200 {object} dto.ConversionStateResponse
// @Router /conversion [get]
func (h *conversionHandler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToConversionStateResponse(h.formService.State()))
}

// updateAmount godoc
// @Summary Edit the amount
// @Description Validates the raw amount text. Text made only of special characters clears the field.
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   amount body dto.UpdateAmountRequest true "Raw amount text"
// @Success 200 {object} dto.ConversionStateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Router /conversion/amount [put]
func (h *conversionHandler) updateAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.formService.EditAmount(c.Request.Context(), req.Amount)
	respond(c, state, err)
}

// selectFrom godoc
// @Summary Select the source currency
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   currency body dto.SelectCurrencyRequest true "default, USD, EUR or GBP"
// @Success 200 {object} dto.ConversionStateResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported currency"
// @Router /conversion/from [put]
func (h *conversionHandler) selectFrom(c *gin.Context) {
	currency, ok := bindCurrency(c)
	if !ok {
		return
	}
	state, err := h.formService.SelectFrom(c.Request.Context(), currency)
	respond(c, state, err)
}

// selectTo godoc
// @Summary Select the target currency
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   currency body dto.SelectCurrencyRequest true "default, USD, EUR or GBP"
// @Success 200 {object} dto.ConversionStateResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported currency"
// @Router /conversion/to [put]
func (h *conversionHandler) selectTo(c *gin.Context) {
	currency, ok := bindCurrency(c)
	if !ok {
		return
	}
	state, err := h.formService.SelectTo(c.Request.Context(), currency)
	respond(c, state, err)
}

// reverse godoc
// @Summary Swap source and target currencies
// @Tags conversion
// @Produce  json
// @Success 200 {object} dto.ConversionStateResponse
// @Router /conversion/reverse [post]
func (h *conversionHandler) reverse(c *gin.Context) {
	state, err := h.formService.Reverse(c.Request.Context())
	respond(c, state, err)
}

// submit godoc
// @Summary Convert the current amount
// @Description Shows and persists the result. Both currencies must be selected and the pair must have a rate.
// @Tags conversion
// @Produce  json
// @Success 200 {object} dto.ConversionStateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing amount or undefined conversion"
// @Router /conversion/submit [post]
func (h *conversionHandler) submit(c *gin.Context) {
	state, err := h.formService.Submit(c.Request.Context())
	if err == nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Conversion submitted",
			slog.String("from", string(state.LastFrom)),
			slog.String("to", string(state.LastTo)),
		)
	}
	respond(c, state, err)
}

// clear godoc
// @Summary Clear the form
// @Description Resets the form and removes the persisted last conversion. Rates are kept.
// @Tags conversion
// @Produce  json
// @Success 200 {object} dto.ConversionStateResponse
// @Router /conversion [delete]
func (h *conversionHandler) clear(c *gin.Context) {
	state, err := h.formService.Clear(c.Request.Context())
	respond(c, state, err)
}

func bindCurrency(c *gin.Context) (domain.Currency, bool) {
	var req dto.SelectCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for SelectCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return "", false
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apperrors.Notice(err)})
		return "", false
	}
	return currency, true
}

// respond writes the state, or maps err to a status code.
func respond(c *gin.Context, state domain.ConversionState, err error) {
	if err == nil {
		c.JSON(http.StatusOK, dto.ToConversionStateResponse(state))
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error", slog.String("error", err.Error()))
		resp := dto.ToConversionStateResponse(state)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apperrors.Notice(err), State: &resp})
		return
	}
	logger.Error("Conversion form action failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}
