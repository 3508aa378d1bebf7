package rekuest

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/forecast-next/internal/core/forecast"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

var (
	Validate   = newValidator()
	translator ut.Translator
)

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("modelkey", modelKey)
	_ = validate.RegisterValidation("censuscolumn", censusColumn)
	return validate
}

func init() {
	locale := en.New()
	translator, _ = ut.New(locale, locale).GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(Validate, translator); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}

	for tag, text := range map[string]string{
		"modelkey":     "{0} must be one of the available model keys",
		"censuscolumn": "{0} must be one of the census schema columns",
	} {
		err := Validate.RegisterTranslation(tag, translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("could not register translation")
		}
	}
}

func modelKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	for _, m := range forecast.ListAvailableModels() {
		if m.Key == key {
			return true
		}
	}
	return false
}

func censusColumn(fl validator.FieldLevel) bool {
	return forecast.IsCensusColumn(fl.Field().String())
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   strings.TrimSpace(fe.Translate(translator)),
		})
	}
	return trans
}

func violations(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return pgerr.ErrInvalidInput.Msg("invalid request: %s", err)
	}
	return pgerr.NewInvalidViolations(translate(ve))
}

// ValidQuery parses the query string of ctx into dest and validates it.
// dest shall always be a pointer.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return pgerr.ErrInvalidInput.Msg("invalid request: %s", err)
	}
	return ValidStruct(dest)
}

func ValidStruct(dest any) error {
	return violations(Validate.Struct(dest))
}

type modelKeyRequest struct {
	Key string `validate:"required,modelkey"`
}

func ValidModelKey(key string) error {
	return ValidStruct(modelKeyRequest{key})
}

type censusColumnRequest struct {
	Column string `validate:"required,censuscolumn"`
}

func ValidCensusColumn(column string) error {
	return ValidStruct(censusColumnRequest{column})
}
