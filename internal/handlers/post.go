package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/utils"
)

type PostHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewPostHandler(gdb *gorm.DB, cfg *config.Config) *PostHandler {
	return &PostHandler{db: gdb, cfg: cfg}
}

// fillCommentCounts batch-fills the comment count of each listed post
func fillCommentCounts(gdb *gorm.DB, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	gdb.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// allTags returns every tag for the sidebar navigation, recomputed from
// storage on each render.
func (h *PostHandler) allTags() []models.Tag {
	var tags []models.Tag
	h.db.Order("name ASC").Find(&tags)
	return tags
}

func (h *PostHandler) Frontpage(c *gin.Context) {
	page := ParsePage(c)

	var total int64
	h.db.Model(&models.Post{}).Count(&total)

	p := NewPagination(page, h.cfg.PostsPerPage, total, "/")

	var posts []models.Post
	h.db.Preload("User").Preload("Tags").
		Order("created_at DESC, id DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&posts)

	fillCommentCounts(h.db, posts)

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":      "Frontpage",
		"Posts":      posts,
		"Tags":       h.allTags(),
		"Pagination": p,
	})
}

func (h *PostHandler) ListByTag(c *gin.Context) {
	var tag models.Tag
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&tag).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Tag not found")
		return
	}

	page := ParsePage(c)

	var total int64
	h.db.Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID).
		Count(&total)

	p := NewPagination(page, h.cfg.PostsPerPage, total, "/tag/"+tag.Slug)

	var posts []models.Post
	h.db.Preload("User").Preload("Tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tag.ID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&posts)

	fillCommentCounts(h.db, posts)

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":      "Tagged as " + tag.Name,
		"Posts":      posts,
		"Tags":       h.allTags(),
		"Tag":        tag,
		"Pagination": p,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}
	h.renderDetail(c, http.StatusOK, post, nil)
}

// CreateComment handles the comment sub-form on the post detail page. On
// success the detail page is re-rendered with the new comment visible.
func (h *PostHandler) CreateComment(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form forms.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDetail(c, http.StatusBadRequest, post, forms.FieldErrors(err))
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Body:   form.Body,
	}
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&comment).Error
	}); err != nil {
		Flash(c, "There was an error while posting your comment")
	}

	h.renderDetail(c, http.StatusOK, post, nil)
}

func (h *PostHandler) findPost(c *gin.Context) (models.Post, bool) {
	var post models.Post
	err := h.db.Preload("User").Preload("Tags").
		Where("slug = ?", c.Param("slug")).
		First(&post).Error
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return post, false
	}
	return post, true
}

func (h *PostHandler) renderDetail(c *gin.Context, code int, post models.Post, fieldErrors map[string]string) {
	var comments []models.Comment
	h.db.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC, id ASC").
		Find(&comments)

	type renderedComment struct {
		models.Comment
		BodyHTML template.HTML
		Floor    int
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{
			Comment:  com,
			BodyHTML: utils.RenderMarkdown(com.Body),
			Floor:    i + 1,
		}
	}

	Render(c, code, "post/detail.html", gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostBody":    utils.RenderMarkdown(post.Body),
		"Comments":    rendered,
		"Tags":        h.allTags(),
		"FieldErrors": fieldErrors,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderCreate(c, http.StatusOK, nil)
}

// Create handles the combined creation page. The hidden "form" field names
// the sub-form being submitted; a request is never matched against both.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	switch forms.Classify(c) {
	case forms.KindPost:
		h.createPost(c, user)
	case forms.KindTag:
		h.createTag(c)
	default:
		h.renderCreate(c, http.StatusBadRequest, map[string]string{
			"form": "Invalid submission",
		})
	}
}

func (h *PostHandler) createPost(c *gin.Context, user *models.User) {
	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreate(c, http.StatusBadRequest, forms.FieldErrors(err))
		return
	}

	// A second post with the same title is rejected, not overwritten
	var count int64
	h.db.Model(&models.Post{}).Where("title = ?", form.Title).Count(&count)
	if count > 0 {
		Flash(c, "There was an error creating the post")
		c.Redirect(http.StatusFound, "/")
		return
	}

	postSlug, err := slug.MakeUnique(slug.Slugify(form.Title), h.slugTaken(&models.Post{}))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create the post")
		return
	}

	post := models.Post{
		Slug:   postSlug,
		Title:  form.Title,
		Body:   form.Body,
		UserID: user.ID,
	}
	if len(form.Tags) > 0 {
		// Unknown tag names are silently skipped
		var tags []models.Tag
		h.db.Where("name IN ?", form.Tags).Find(&tags)
		post.Tags = tags
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&post).Error
	}); err != nil {
		Flash(c, "There was an error creating the post")
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) createTag(c *gin.Context) {
	var form forms.TagForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderCreate(c, http.StatusBadRequest, forms.FieldErrors(err))
		return
	}

	var count int64
	h.db.Model(&models.Tag{}).Where("name = ?", form.Name).Count(&count)
	if count > 0 {
		Flash(c, "The tag already existed")
		h.renderCreate(c, http.StatusOK, nil)
		return
	}

	tagSlug, err := slug.MakeUnique(slug.Slugify(form.Name), h.slugTaken(&models.Tag{}))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create the tag")
		return
	}

	tag := models.Tag{Name: form.Name, Slug: tagSlug}
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tag).Error
	}); err != nil {
		Flash(c, "There was an error creating the tag")
		h.renderCreate(c, http.StatusOK, nil)
		return
	}

	Flash(c, "Tag created")
	// The selectable tag list is recomputed from storage on render, so the
	// new tag is offered in the post sub-form within this same response.
	h.renderCreate(c, http.StatusOK, nil)
}

// slugTaken reports whether a slug is already stored for the given model.
func (h *PostHandler) slugTaken(model interface{}) func(string) (bool, error) {
	return func(s string) (bool, error) {
		var count int64
		if err := h.db.Model(model).Where("slug = ?", s).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

func (h *PostHandler) renderCreate(c *gin.Context, code int, fieldErrors map[string]string) {
	Render(c, code, "post/create.html", gin.H{
		"Title":       "Post something",
		"Tags":        h.allTags(),
		"FieldErrors": fieldErrors,
	})
}
