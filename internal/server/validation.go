package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lingocraft/lingocraft/internal/translation"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("supported_language", func(fl validator.FieldLevel) bool {
		return translation.IsSupported(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register supported_language validation: %w", err)
	}
	if err := validate.RegisterTranslation("supported_language", trans, func(ut ut.Translator) error {
		return ut.Add("supported_language", "{0} must be one of "+strings.Join(translation.SupportedLanguages(), ", "), true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("supported_language", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register supported_language translation: %w", err)
	}

	return &requestValidator{validate: validate, translator: trans}, nil
}

// Struct validates v and returns the translated messages joined in one error.
func (v *requestValidator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Translate(v.translator))
	}
	return errors.New(strings.Join(messages, ", "))
}
