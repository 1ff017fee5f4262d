// Package validation provides declarative per-route request schemas.
//
// A route names which slots it needs validated (params, query, body); the
// middleware runs the configured slots in that order and stops at the
// first failing one. Successful slots store their normalized output in
// the gin context so handlers never re-parse raw input. Failures carry a
// field-level detail map inside a VALIDATION_ERROR.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/forkful/recipebook/internal/apperror"
)

// Context keys for normalized slot output.
const (
	ctxRecipeID    = "validated_recipe_id"
	ctxRecipeInput = "validated_recipe_input"
)

// Slot validates one request slot, storing its normalized value in the
// context on success.
type Slot func(c *gin.Context) error

// Schemas names the slots a route requires validated.
type Schemas struct {
	Params Slot
	Query  Slot
	Body   Slot
}

// Validate runs the configured slots in order (params, query, body) and
// aborts on the first failure.
func Validate(s Schemas) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, slot := range []Slot{s.Params, s.Query, s.Body} {
			if slot == nil {
				continue
			}
			if err := slot(c); err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json names so details line up with the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RecipeInput is the validated, normalized body for recipe create/update.
// PrepTime and CookTime are pointers so a missing field is distinguishable
// from an explicit zero.
type RecipeInput struct {
	Title        string   `json:"title" validate:"required,min=1"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,min=1"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,min=1"`
	PrepTime     *int     `json:"prepTime" validate:"required,gte=0"`
	CookTime     *int     `json:"cookTime" validate:"required,gte=0"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
}

// RecipeIDParam validates the :id path parameter as a repository
// identifier before any lookup is attempted.
func RecipeIDParam(c *gin.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.Validation(map[string][]string{
			"id": {"must be a valid recipe id"},
		})
	}
	c.Set(ctxRecipeID, id)
	return nil
}

// RecipeBody validates and normalizes the recipe request body.
func RecipeBody(c *gin.Context) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return apperror.Validation(map[string][]string{
			"body": {"could not be read"},
		})
	}

	var input RecipeInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return apperror.Validation(jsonDetails(err))
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if err := validate.Struct(&input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperror.Validation(fieldDetails(verrs))
		}
		return err
	}

	c.Set(ctxRecipeInput, input)
	return nil
}

// RecipeIDFrom returns the validated :id parameter.
func RecipeIDFrom(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet(ctxRecipeID).(uuid.UUID)
	return id
}

// RecipeInputFrom returns the validated, normalized request body.
func RecipeInputFrom(c *gin.Context) RecipeInput {
	input, _ := c.MustGet(ctxRecipeInput).(RecipeInput)
	return input
}

func jsonDetails(err error) map[string][]string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return map[string][]string{
			ute.Field: {fmt.Sprintf("must be of type %s", friendlyType(ute.Type))},
		}
	}
	return map[string][]string{"body": {"must be valid JSON"}}
}

func friendlyType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

func fieldDetails(verrs validator.ValidationErrors) map[string][]string {
	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		details[field] = append(details[field], violationMessage(fe))
	}
	return details
}

// fieldPath strips the root struct name from the namespace, leaving the
// json path of the offending field (e.g. "ingredients[0]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must not be empty"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
