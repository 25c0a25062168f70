package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/currency_convertor/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the `currency` tag to gin's validator engine.
func registerValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			_, perr := domain.ParseCurrency(fl.Field().String())
			return perr == nil
		})
	})
	return err
}
