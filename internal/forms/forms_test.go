package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/create/post", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "post sub-form", value: "post", expected: KindPost},
		{name: "tag sub-form", value: "tag", expected: KindTag},
		{name: "unknown discriminant", value: "bogus", expected: KindNone},
		{name: "missing discriminant", value: "", expected: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.value != "" {
				values.Set("form", tt.value)
			}
			assert.Equal(t, tt.expected, Classify(formContext(t, values)))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	c := formContext(t, url.Values{"title": {""}, "body": {""}})

	var form PostForm
	err := c.ShouldBind(&form)
	require.Error(t, err)

	errs := FieldErrors(err)
	assert.Equal(t, "This field is required", errs["title"])
	assert.Equal(t, "This field is required", errs["body"])
}

func TestFieldErrorsMax(t *testing.T) {
	c := formContext(t, url.Values{
		"title": {strings.Repeat("a", 201)},
		"body":  {"fine"},
	})

	var form PostForm
	err := c.ShouldBind(&form)
	require.Error(t, err)

	errs := FieldErrors(err)
	assert.Equal(t, "Must be at most 200 characters", errs["title"])
	assert.NotContains(t, errs, "body")
}
