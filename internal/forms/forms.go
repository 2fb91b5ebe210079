// Package forms declares the submitted-form payloads and translates
// validator failures into field errors for inline rendering.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// The combined creation page carries two sub-forms. Each submission names
// which one it is in a hidden "form" discriminant field instead of being
// matched by trial validation.
const (
	KindPost = "post"
	KindTag  = "tag"
	KindNone = ""
)

type PostForm struct {
	Title string   `form:"title" binding:"required,max=200"`
	Body  string   `form:"body" binding:"required"`
	Tags  []string `form:"tags"`
}

type TagForm struct {
	Name string `form:"name" binding:"required,max=64"`
}

type CommentForm struct {
	Body string `form:"body" binding:"required,max=4000"`
}

type SignupForm struct {
	Username string `form:"username" binding:"required,min=2,max=64"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Classify reports which creation sub-form an incoming submission targets.
func Classify(c *gin.Context) string {
	switch c.PostForm("form") {
	case KindPost:
		return KindPost
	case KindTag:
		return KindTag
	default:
		return KindNone
	}
}

// FieldErrors flattens a binding error into a field name -> message map.
// Errors that are not validator.ValidationErrors become a single
// form-level entry.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[strings.ToLower(fe.Field())] = message(fe)
		}
		return out
	}
	out["form"] = "Invalid submission"
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return "Invalid value"
	}
}
