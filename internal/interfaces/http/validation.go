package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como número (gte, lte...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindJSON decodifica el cuerpo y valida sus tags. Devuelve *domain.ValidationError.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("body", "JSON inválido")
	}
	return validateStruct(out)
}

// bindQuery decodifica y valida parámetros de query.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationError("query", "parámetros inválidos")
	}
	return validateStruct(out)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.NewValidationError("body", err.Error())
	}
	verr := &domain.ValidationError{}
	for _, fe := range ves {
		verr.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return verr
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.items[0].price" -> "items[0].price".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "es obligatorio"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "requiere al menos " + fe.Param() + " elemento(s)"
		}
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "lte":
		return "debe ser menor o igual a " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "formato esperado YYYY-MM-DD"
	case "email":
		return "email inválido"
	case "url":
		return "URL inválida"
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}
