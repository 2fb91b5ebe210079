package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(gdb *gorm.DB) *AuthHandler {
	return &AuthHandler{db: gdb}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"FieldErrors": forms.FieldErrors(err),
			"Username":    form.Username,
			"Email":       form.Email,
		})
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create the account")
		return
	}

	user := models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		Render(c, http.StatusConflict, "auth/register.html", gin.H{
			"Error":    "Username or email already registered",
			"Username": form.Username,
			"Email":    form.Email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{
			"FieldErrors": forms.FieldErrors(err),
			"Email":       form.Email,
		})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", form.Email).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	if !utils.CheckPasswordHash(form.Password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
