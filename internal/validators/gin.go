package validators

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

var registerOnce sync.Once

// Register adiciona as tags phone, slot_time e iso_date.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("slot_time", func(fl validator.FieldLevel) bool {
		_, err := appointment.NormalizeTime(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		return timezone.IsDate(fl.Field().String())
	})
}

// RegisterGin instala as tags no validador usado pelo binding do gin.
func RegisterGin() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Register(v)
		}
	})
}
