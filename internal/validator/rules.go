package validator

import (
	"fmt"
	"log"
	"reflect"

	"debatecamp/internal/models"
	"debatecamp/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

var ratingMessage = fmt.Sprintf("Must be a whole number between %d and %d", models.MinRating, models.MaxRating)

// registerCustomRules регистрирует кастомные правила и типы в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка конфигурации, дальше работать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// dto.Rating валидируется как int; нечисловой ввод превращается в nil
	// и проваливает любой тег на поле.
	v.RegisterCustomTypeFunc(ratingValue, dto.Rating{})

	// 'rating': целое число в диапазоне 1..5
	mustRegister("rating", validateRating)
}

func ratingValue(field reflect.Value) interface{} {
	r, ok := field.Interface().(dto.Rating)
	if !ok || !r.Valid {
		return nil
	}
	return r.Value
}

func validateRating(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := fl.Field().Int()
		return n >= models.MinRating && n <= models.MaxRating
	default:
		return false
	}
}
