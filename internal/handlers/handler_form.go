package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/SscSPs/currency_convertor/internal/middleware"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const formTemplate = "form.html.tmpl"

// loadTemplates parses the embedded HTML templates.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// formAction is the button that posted the form.
type formAction string

const (
	formActionUpdate  formAction = "update"
	formActionReverse formAction = "reverse"
	formActionSubmit  formAction = "submit"
	formActionClear   formAction = "clear"
)

type formPost struct {
	Amount string `form:"amount"`
	From   string `form:"from"`
	To     string `form:"to"`
	Action string `form:"action"`
}

type currencyOption struct {
	Code         string
	Label        string
	FromSelected bool
	ToSelected   bool
}

type formView struct {
	Amount        string
	Currencies    []currencyOption
	OutputVisible bool
	Output        string
	Summary       string
	Notice        string
}

func newFormView(s domain.ConversionState, notice string) formView {
	v := formView{
		Amount:        s.AmountText,
		OutputVisible: s.ResultVisible,
		Output:        s.LastResult,
		Summary:       s.Summary(),
		Notice:        notice,
	}
	for _, c := range append([]domain.Currency{domain.CurrencyDefault}, domain.SupportedCurrencies...) {
		v.Currencies = append(v.Currencies, currencyOption{
			Code:         string(c),
			Label:        c.Label(),
			FromSelected: s.From == c,
			ToSelected:   s.To == c,
		})
	}
	return v
}

// formHandler renders the conversion form as an HTML page.
type formHandler struct {
	formService portssvc.ConversionFormSvcFacade
}

func newFormHandler(fs portssvc.ConversionFormSvcFacade) *formHandler {
	return &formHandler{formService: fs}
}

func registerFormRoutes(r *gin.Engine, formService portssvc.ConversionFormSvcFacade) {
	h := newFormHandler(formService)
	r.GET("/", h.showForm)
	r.POST("/", h.postForm)
}

func (h *formHandler) showForm(c *gin.Context) {
	c.HTML(http.StatusOK, formTemplate, newFormView(h.formService.State(), ""))
}

// postForm applies the posted fields in the order a user would edit them
// (amount, source, target) and then the pressed button. Clear skips the fields.
func (h *formHandler) postForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var post formPost
	if err := c.ShouldBind(&post); err != nil {
		logger.Warn("Failed to bind form", slog.String("error", err.Error()))
		c.HTML(http.StatusBadRequest, formTemplate, newFormView(h.formService.State(), "Invalid form submission."))
		return
	}

	state, err := h.apply(c.Request.Context(), post)
	status := http.StatusOK
	notice := ""
	if err != nil {
		notice = apperrors.Notice(err)
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Form action failed", slog.String("error", err.Error()))
			status = http.StatusInternalServerError
			notice = "Something went wrong."
		}
	}
	c.HTML(status, formTemplate, newFormView(state, notice))
}

func (h *formHandler) apply(ctx context.Context, post formPost) (domain.ConversionState, error) {
	// Clear discards whatever is in the fields.
	if formAction(post.Action) == formActionClear {
		return h.formService.Clear(ctx)
	}

	state := h.formService.State()

	if post.Amount != state.AmountText {
		s, err := h.formService.EditAmount(ctx, post.Amount)
		if err != nil {
			return s, err
		}
		state = s
	}
	if post.From != "" {
		from, err := domain.ParseCurrency(post.From)
		if err != nil {
			return state, err
		}
		if from != state.From {
			if state, err = h.formService.SelectFrom(ctx, from); err != nil {
				return state, err
			}
		}
	}
	if post.To != "" {
		to, err := domain.ParseCurrency(post.To)
		if err != nil {
			return state, err
		}
		if to != state.To {
			if state, err = h.formService.SelectTo(ctx, to); err != nil {
				return state, err
			}
		}
	}

	switch formAction(post.Action) {
	case formActionReverse:
		return h.formService.Reverse(ctx)
	case formActionSubmit:
		return h.formService.Submit(ctx)
	case formActionUpdate, "":
		return state, nil
	default:
		return state, apperrors.NewValidationError("unknown action " + post.Action)
	}
}
