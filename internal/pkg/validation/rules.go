package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/hostelmess/internal/app/models"
)

// UPIPattern matches virtual payment addresses such as ramesh.kumar@paytm.
var UPIPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// IsWeekday reports whether day is a capitalised English weekday name.
func IsWeekday(day string) bool {
	return weekdays[day]
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Get returns the shared validator with the mess rules registered. It reads
// the same `binding` tags gin does, so request DTOs validate identically
// inside and outside a handler.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.SetTagName("binding")
		mustRegister(instance)
	})
	return instance
}

// RegisterGin adds the mess rules to gin's binding validator so `binding`
// tags can use them.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	mustRegister(v)
	return nil
}

func mustRegister(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"weekday": func(fl validator.FieldLevel) bool {
			return IsWeekday(fl.Field().String())
		},
		"complaint_category": func(fl validator.FieldLevel) bool {
			return models.IsComplaintCategory(fl.Field().String())
		},
		"complaint_status": func(fl validator.FieldLevel) bool {
			return models.ComplaintStatus(fl.Field().String()).Valid()
		},
		"priority": func(fl validator.FieldLevel) bool {
			return models.Priority(fl.Field().String()).Valid()
		},
		"role": func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		},
		"upi": func(fl validator.FieldLevel) bool {
			return UPIPattern.MatchString(fl.Field().String())
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// FieldErrors flattens validator errors into field -> message. Other errors
// yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = Message(fe)
	}
	return out
}

// Message renders one field error for humans.
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "weekday":
		return e.Field() + " must be a weekday name such as Monday"
	case "complaint_category":
		return e.Field() + " must be one of: " + strings.Join(models.ComplaintCategories, ", ")
	case "complaint_status":
		return e.Field() + " must be pending or resolved"
	case "priority":
		return e.Field() + " must be low, medium or high"
	case "role":
		return e.Field() + " must be student or committee"
	case "upi":
		return e.Field() + " must be a UPI id such as name@bank"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
