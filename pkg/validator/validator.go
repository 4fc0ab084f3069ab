package validator

import (
	"log"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("form")
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("phone10", phone10Validator); err != nil {
			log.Fatal("register phone10 validator failed")
		}
		if err := v.RegisterValidation("batchyear", batchYearValidator); err != nil {
			log.Fatal("register batchyear validator failed")
		}
	}
}

var phone10Validator validator.Func = func(fl validator.FieldLevel) bool {
	matched, err := regexp.MatchString(`^[0-9]{10}$`, fl.Field().String())
	if err != nil {
		return false
	}
	return matched
}

// batchyear accepts graduation years the school actually had batches for.
var batchYearValidator validator.Func = func(fl validator.FieldLevel) bool {
	year, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return year >= 1956 && year <= 2028
}
