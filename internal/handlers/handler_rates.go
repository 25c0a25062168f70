package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/dto"
	"github.com/SscSPs/currency_convertor/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ratesHandler handles HTTP requests related to conversion rates.
type ratesHandler struct {
	formService portssvc.ConversionFormSvcFacade
}

// newRatesHandler creates a new ratesHandler.
func newRatesHandler(fs portssvc.ConversionFormSvcFacade) *ratesHandler {
	return &ratesHandler{formService: fs}
}

// registerRatesRoutes registers routes related to conversion rates.
// The update route is only added when adminAuth is non-nil.
func registerRatesRoutes(rg *gin.RouterGroup, formService portssvc.ConversionFormSvcFacade, adminAuth gin.HandlerFunc) {
	h := newRatesHandler(formService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		if adminAuth != nil {
			rates.PUT("/:from/:to", adminAuth, h.updateRate)
		}
	}
}

// listRates godoc
// @Summary List conversion rates
// @Description Returns the rate table keyed FROM_TO
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RatesResponse
// @Router /rates [get]
func (h *ratesHandler) listRates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRatesResponse(h.formService.State().Rates))
}

// updateRate godoc
// @Summary Update a conversion rate
// @Description Replaces the multiplier for one currency pair and persists the rate table
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   from path string true "Source currency"
// @Param   to path string true "Target currency"
// @Param   rate body dto.UpdateRateRequest true "New rate"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid pair or rate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /rates/{from}/{to} [put]
func (h *ratesHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := domain.ParseCurrency(c.Param("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apperrors.Notice(err)})
		return
	}
	to, err := domain.ParseCurrency(c.Param("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apperrors.Notice(err)})
		return
	}

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.formService.UpdateRate(c.Request.Context(), from, to, req.Rate)
	if err != nil {
		respond(c, state, err)
		return
	}

	subject, _ := middleware.GetAdminSubject(c.Request.Context())
	logger.Info("Conversion rate updated",
		slog.String("pair", domain.RateKey(from, to)),
		slog.Float64("rate", req.Rate),
		slog.String("admin", subject),
	)
	c.JSON(http.StatusOK, dto.ToRatesResponse(state.Rates))
}
