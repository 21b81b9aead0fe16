package newsController

import (
	"errors"
	"log"
	"strconv"

	"donasi/middleware"
	"donasi/models"
	newsValidator "donasi/validators/news"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller implements the news article CRUD.
type Controller struct {
	DB *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// GetNews returns the paginated news list, newest first
func (ctl *Controller) GetNews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := ctl.DB.Model(&models.News{}).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to retrieve news", nil)
	}

	var newsList []models.News
	err := ctl.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&newsList).Error
	if err != nil {
		log.Printf("Error fetching news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to retrieve news", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "News retrieved", fiber.Map{
		"news":       newsList,
		"pagination": middleware.NewPagination(total, page, limit),
	})
}

// GetNewsByID returns a single news article
func (ctl *Controller) GetNewsByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid news id", nil)
	}

	var newsItem models.News
	if err := ctl.DB.First(&newsItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "News tidak ditemukan", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to retrieve news", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "News retrieved", newsItem)
}

// CreateNews creates a news article authored by the logged-in admin
func (ctl *Controller) CreateNews(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedNews").(*newsValidator.CreateNewsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	newsItem := models.News{
		AuthorID:        userID,
		NewsName:        reqData.NewsName,
		NewsDescription: reqData.NewsDescription,
		NewsImage:       reqData.NewsImage,
	}

	if err := ctl.DB.Create(&newsItem).Error; err != nil {
		log.Printf("Error creating news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to create news", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "News created", newsItem)
}

// UpdateNews applies a partial update to a news article
func (ctl *Controller) UpdateNews(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid news id", nil)
	}

	reqData, ok := c.Locals("validatedNewsUpdate").(*newsValidator.UpdateNewsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var newsItem models.News
	if err := ctl.DB.First(&newsItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "News tidak ditemukan", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update news", nil)
	}

	if reqData.NewsName != "" {
		newsItem.NewsName = reqData.NewsName
	}
	if reqData.NewsDescription != "" {
		newsItem.NewsDescription = reqData.NewsDescription
	}
	if reqData.NewsImage != "" {
		newsItem.NewsImage = reqData.NewsImage
	}

	if err := ctl.DB.Save(&newsItem).Error; err != nil {
		log.Printf("Error updating news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update news", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "News updated", newsItem)
}

// DeleteNews removes a news article
func (ctl *Controller) DeleteNews(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid news id", nil)
	}

	var newsItem models.News
	if err := ctl.DB.First(&newsItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, "News tidak ditemukan", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete news", nil)
	}

	if err := ctl.DB.Delete(&newsItem).Error; err != nil {
		log.Printf("Error deleting news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to delete news", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "News deleted", newsItem)
}
