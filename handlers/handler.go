package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"restaurant-catalog-api/catalog"
	"restaurant-catalog-api/logger"
	"restaurant-catalog-api/middleware"
	"restaurant-catalog-api/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
)

// Handler serves the catalog and identity endpoints.
type Handler struct {
	catalog *catalog.Service
	users   store.UserStore
	auth    *middleware.Auth
}

func New(svc *catalog.Service, users store.UserStore, auth *middleware.Auth) *Handler {
	setupValidator()
	return &Handler{catalog: svc, users: users, auth: auth}
}

var (
	validatorOnce sync.Once
	translator    ut.Translator
)

// setupValidator registers the extra tags and English messages on gin's
// validator engine.
func setupValidator() {
	validatorOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = enTranslations.RegisterDefaultTranslations(v, translator)
		_ = v.RegisterTranslation("notblank", translator,
			func(ut ut.Translator) error { return ut.Add("notblank", "{0} must not be blank", true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T("notblank", fe.Field())
				return t
			})
	})
}

// bindError renders a request binding failure as a 400.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(msgs, "; ")})
}

// fail maps a catalog error to a response. Internal faults are logged and
// answered with a generic message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "The restaurant was modified concurrently, please retry"})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
