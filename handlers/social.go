// handlers/social.go - Posts, likes and follows
package handlers

import (
	"errors"
	"log"

	"uplife/database"
	"uplife/middleware"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePostRequest struct {
	Text           string `json:"text"`
	AchievementKey string `json:"achievement_key,omitempty"`
}

// CreatePost shares an update (optionally an unlocked achievement)
func CreatePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Text == "" && req.AchievementKey == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Post must have text or an achievement"})
	}

	post := models.Post{
		UserID:         userID,
		Text:           req.Text,
		AchievementKey: req.AchievementKey,
	}

	db := database.GetDB()
	if err := db.Create(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "post": post})
}

// GetFeed lists recent posts from the user and everyone they follow
func GetFeed(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	db := database.GetDB()
	var posts []models.Post
	err = db.Preload("User").
		Where("user_id = ? OR user_id IN (SELECT following_id FROM subscriptions WHERE follower_id = ?)", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch feed"})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts})
}

// LikePost adds a like to a post; liking twice is a no-op. A new like
// can push the author over a social achievement threshold, so an
// achievement pass runs for the author afterwards.
func LikePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	db := database.GetDB()
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
	}

	reaction := models.PostReaction{
		PostID:       post.ID,
		UserID:       userID,
		ReactionType: "like",
	}
	if err := db.Create(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(fiber.Map{"success": true, "already_liked": true})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to like post"})
	}

	if post.UserID != userID {
		if _, err := services.GetAchievementService().CheckAndAward(post.UserID); err != nil {
			log.Printf("Achievement check after like failed for user %d: %v", post.UserID, err)
		}
	}

	return c.Status(201).JSON(fiber.Map{"success": true})
}

// UnlikePost removes the current user's like from a post
func UnlikePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	db := database.GetDB()
	db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostReaction{})

	return c.JSON(fiber.Map{"success": true})
}

// Follow subscribes the current user to another user's updates
func Follow(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	targetID, err := c.ParamsInt("id")
	if err != nil || uint(targetID) == userID {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	sub := models.Subscription{
		FollowerID:  userID,
		FollowingID: target.ID,
	}
	if err := db.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(fiber.Map{"success": true, "already_following": true})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to follow user"})
	}

	if _, err := services.GetAchievementService().CheckAndAward(target.ID); err != nil {
		log.Printf("Achievement check after follow failed for user %d: %v", target.ID, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true})
}

// Unfollow removes a subscription
func Unfollow(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	targetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	db.Where("follower_id = ? AND following_id = ?", userID, targetID).Delete(&models.Subscription{})

	return c.JSON(fiber.Map{"success": true})
}

// GetFollowers lists the users following the current user
func GetFollowers(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var followers []models.User
	err = db.Joins("JOIN subscriptions ON subscriptions.follower_id = users.id").
		Where("subscriptions.following_id = ?", userID).
		Find(&followers).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch followers"})
	}

	for i := range followers {
		followers[i].Password = ""
		followers[i].Email = nil
	}

	return c.JSON(fiber.Map{"success": true, "followers": followers, "total": len(followers)})
}
