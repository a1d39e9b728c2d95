package forum

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"resolux-app/database"
	"resolux-app/internal/domain/forum"

	"github.com/gin-gonic/gin"
)

type threadDTO struct {
	forum.Thread
	Username string `json:"username"`
}

type postDTO struct {
	forum.Post
	Username string `json:"username"`
}

// GET /forum/categories
func ListCategories(c *gin.Context) {
	var categories []forum.Category
	if err := database.DB.Order("sort_order ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /forum/threads?category_id=
// Pinned threads first, then most recently updated.
func ListThreads(c *gin.Context) {
	query := database.DB.Preload("User").
		Order("is_pinned DESC").
		Order("updated_at DESC")

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var threads []forum.Thread
	if err := query.Find(&threads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load threads"})
		return
	}

	out := make([]threadDTO, 0, len(threads))
	for _, t := range threads {
		out = append(out, threadDTO{Thread: t, Username: t.User.Username})
	}
	c.JSON(http.StatusOK, out)
}

// GET /forum/threads/:id/posts
func ListPosts(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread id"})
		return
	}

	var posts []forum.Post
	if err := database.DB.Preload("User").
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, postDTO{Post: p, Username: p.User.Username})
	}
	c.JSON(http.StatusOK, out)
}

// POST /forum/threads
func CreateThread(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to create a thread"})
		return
	}

	var input struct {
		CategoryID uint    `json:"category_id" binding:"required"`
		Title      string  `json:"title" binding:"required"`
		Content    *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var category forum.Category
	if err := database.DB.First(&category, input.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	thread := forum.Thread{
		CategoryID: input.CategoryID,
		UserID:     userID,
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
	}
	if err := database.DB.Create(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thread"})
		return
	}

	c.JSON(http.StatusOK, thread)
}

// POST /forum/threads/:id/posts
// Replying bumps the thread's updated_at so it surfaces in the listing.
func CreatePost(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to create a post"})
		return
	}

	threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread id"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var thread forum.Thread
	if err := database.DB.First(&thread, threadID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}
	if thread.IsLocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "Thread is locked"})
		return
	}

	post := forum.Post{
		ThreadID: thread.ID,
		UserID:   userID,
		Content:  input.Content,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Model(&thread).Update("updated_at", time.Now())

	c.JSON(http.StatusOK, post)
}
