package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/upg/backend/internal/infrastructure/sms"
)

// SetupValidator configures gin's binding validator: error messages use JSON
// field names, and the kenyan_phone tag accepts any number the SMS gateway
// can normalize (+254..., 07..., 9-digit local). Call once at startup.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("kenyan_phone", validKenyanPhone)
}

func validKenyanPhone(fl validator.FieldLevel) bool {
	_, err := sms.NormalizePhoneNumber(fl.Field().String())
	return err == nil
}
