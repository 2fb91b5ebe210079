package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/models"
)

type UserHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserHandler(gdb *gorm.DB, cfg *config.Config) *UserHandler {
	return &UserHandler{db: gdb, cfg: cfg}
}

// Account shows the logged-in user's own account page.
func (h *UserHandler) Account(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var postCount, commentCount int64
	h.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)
	h.db.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

	Render(c, http.StatusOK, "user/account.html", gin.H{
		"Title":        user.Username,
		"User":         user,
		"PostCount":    postCount,
		"CommentCount": commentCount,
	})
}

// Posts shows any user's public post listing by username.
func (h *UserHandler) Posts(c *gin.Context) {
	var user models.User
	if err := h.db.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	page := ParsePage(c)

	var total int64
	h.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&total)

	p := NewPagination(page, h.cfg.PostsPerPage, total, "/user/"+user.Username)

	var posts []models.Post
	h.db.Preload("User").Preload("Tags").
		Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&posts)

	fillCommentCounts(h.db, posts)

	var tags []models.Tag
	h.db.Order("name ASC").Find(&tags)

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":      "Posts by " + user.Username,
		"Posts":      posts,
		"Tags":       tags,
		"Author":     user,
		"Pagination": p,
	})
}
