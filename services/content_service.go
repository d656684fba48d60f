package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

// ContentService serves the localized marketing surface: service catalog,
// blog, case studies (portfolio) and FAQ. Public reads pick the language
// from ?lang= or Accept-Language; staff CRUD works on all languages at once.
type ContentService struct {
	DB *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{DB: db}
}

func requestLocale(c *fiber.Ctx) string {
	return utils.ResolveLocale(c.Query("lang"), c.Get("Accept-Language"))
}

// contentSlug builds a URL slug from the first non-empty localized title.
// Arabic/Turkish titles are transliterated by the slug package.
func contentSlug(title models.Localized) string {
	for _, t := range []string{title.En, title.Tr, title.Ar} {
		if strings.TrimSpace(t) != "" {
			return slug.Make(t)
		}
	}
	return uuid.NewString()[:8]
}

// --- Service catalog ---

// ListServices returns active catalog entries localized for the caller.
func (s *ContentService) ListServices(c *fiber.Ctx) error {
	locale := requestLocale(c)

	var items []models.ServiceItem
	if err := s.DB.Where("active = ?", true).Order("created_at ASC").Find(&items).Error; err != nil {
		log.Printf("DB error listing services: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list services"})
	}

	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"id":          item.ID,
			"slug":        item.Slug,
			"title":       item.Title.Pick(locale),
			"description": item.Description.Pick(locale),
			"price":       item.Price,
		})
	}
	return c.JSON(fiber.Map{"locale": locale, "services": out})
}

// CreateService (staff) adds a catalog entry.
func (s *ContentService) CreateService(c *fiber.Ctx) error {
	var req struct {
		Title       models.Localized `json:"title"`
		Description models.Localized `json:"description"`
		Price       any              `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	price := utils.ToNumber(req.Price)
	if req.Title.En == "" || price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "English title and a positive price are required"})
	}

	item := &models.ServiceItem{
		ID:          uuid.NewString(),
		Slug:        contentSlug(req.Title),
		Title:       req.Title,
		Description: req.Description,
		Price:       utils.RoundFloat(price, 2),
		Active:      true,
	}
	if err := s.DB.Create(item).Error; err != nil {
		log.Printf("DB error creating service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create service"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateService (staff) patches a catalog entry.
func (s *ContentService) UpdateService(c *fiber.Ctx) error {
	var item models.ServiceItem
	if err := s.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Title       *models.Localized `json:"title"`
		Description *models.Localized `json:"description"`
		Price       any               `json:"price"`
		Active      *bool             `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if price := utils.ToNumber(req.Price); price > 0 {
			item.Price = utils.RoundFloat(price, 2)
		}
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := s.DB.Save(&item).Error; err != nil {
		log.Printf("DB error updating service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update service"})
	}
	return c.JSON(item)
}

// --- Blog ---

// ListPosts returns published posts localized for the caller.
func (s *ContentService) ListPosts(c *fiber.Ctx) error {
	locale := requestLocale(c)

	var posts []models.BlogPost
	if err := s.DB.Where("status = ?", models.ContentStatusPublished).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		log.Printf("DB error listing posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list posts"})
	}

	out := make([]fiber.Map, 0, len(posts))
	for _, p := range posts {
		out = append(out, fiber.Map{
			"id":           p.ID,
			"slug":         p.Slug,
			"title":        p.Title.Pick(locale),
			"cover_url":    p.CoverURL,
			"published_at": p.PublishedAt,
		})
	}
	return c.JSON(fiber.Map{"locale": locale, "posts": out})
}

// GetPostBySlug returns one published post, localized.
func (s *ContentService) GetPostBySlug(c *fiber.Ctx) error {
	locale := requestLocale(c)

	var post models.BlogPost
	if err := s.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.ContentStatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{
		"id":           post.ID,
		"slug":         post.Slug,
		"locale":       locale,
		"title":        post.Title.Pick(locale),
		"body":         post.Body.Pick(locale),
		"cover_url":    post.CoverURL,
		"published_at": post.PublishedAt,
	})
}

// CreatePost (staff) drafts a blog post.
func (s *ContentService) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    models.Localized `json:"title"`
		Body     models.Localized `json:"body"`
		CoverURL string           `json:"cover_url"`
		AuthorID string           `json:"author_id"`
		Publish  bool             `json:"publish"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title.En == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "English title is required"})
	}

	post := &models.BlogPost{
		ID:       uuid.NewString(),
		Slug:     contentSlug(req.Title),
		Title:    req.Title,
		Body:     req.Body,
		CoverURL: req.CoverURL,
		AuthorID: req.AuthorID,
		Status:   models.ContentStatusDraft,
	}
	if req.Publish {
		now := time.Now()
		post.Status = models.ContentStatusPublished
		post.PublishedAt = &now
	}

	if err := s.DB.Create(post).Error; err != nil {
		log.Printf("DB error creating post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// PublishPost (staff) flips a draft post to published.
func (s *ContentService) PublishPost(c *fiber.Ctx) error {
	var post models.BlogPost
	if err := s.DB.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	now := time.Now()
	post.Status = models.ContentStatusPublished
	post.PublishedAt = &now
	if err := s.DB.Save(&post).Error; err != nil {
		log.Printf("DB error publishing post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to publish post"})
	}
	return c.JSON(post)
}

// --- Portfolio / case studies ---

// ListPortfolio returns published case studies localized for the caller.
func (s *ContentService) ListPortfolio(c *fiber.Ctx) error {
	locale := requestLocale(c)

	var items []models.PortfolioItem
	if err := s.DB.Where("status = ?", models.ContentStatusPublished).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		log.Printf("DB error listing portfolio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list portfolio"})
	}

	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"id":        item.ID,
			"slug":      item.Slug,
			"title":     item.Title.Pick(locale),
			"summary":   item.Summary.Pick(locale),
			"cover_url": item.CoverURL,
		})
	}
	return c.JSON(fiber.Map{"locale": locale, "portfolio": out})
}

// CreatePortfolioItem (staff) drafts a case study, optionally bound to a
// delivered project. Publishing it later locks that project's review.
func (s *ContentService) CreatePortfolioItem(c *fiber.Ctx) error {
	var req struct {
		ProjectID *string          `json:"project_id"`
		Title     models.Localized `json:"title"`
		Summary   models.Localized `json:"summary"`
		CoverURL  string           `json:"cover_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title.En == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "English title is required"})
	}

	if req.ProjectID != nil {
		var project models.Project
		if err := s.DB.First(&project, "id = ?", *req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
	}

	item := &models.PortfolioItem{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		Slug:      contentSlug(req.Title),
		Title:     req.Title,
		Summary:   req.Summary,
		CoverURL:  req.CoverURL,
		Status:    models.ContentStatusDraft,
	}
	if err := s.DB.Create(item).Error; err != nil {
		log.Printf("DB error creating portfolio item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create portfolio item"})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// PublishPortfolioItem (staff) publishes a case study, which also locks the
// linked project's review.
func (s *ContentService) PublishPortfolioItem(c *fiber.Ctx) error {
	var item models.PortfolioItem
	if err := s.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Portfolio item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	item.Status = models.ContentStatusPublished
	if err := s.DB.Save(&item).Error; err != nil {
		log.Printf("DB error publishing portfolio item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to publish portfolio item"})
	}
	return c.JSON(item)
}

// --- FAQ ---

// ListFAQ returns active FAQ entries localized for the caller, in display
// order.
func (s *ContentService) ListFAQ(c *fiber.Ctx) error {
	locale := requestLocale(c)

	var entries []models.FAQEntry
	if err := s.DB.Where("active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		log.Printf("DB error listing FAQ: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list FAQ"})
	}

	out := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, fiber.Map{
			"id":       e.ID,
			"question": e.Question.Pick(locale),
			"answer":   e.Answer.Pick(locale),
		})
	}
	return c.JSON(fiber.Map{"locale": locale, "faq": out})
}

// CreateFAQEntry (staff) adds a FAQ entry.
func (s *ContentService) CreateFAQEntry(c *fiber.Ctx) error {
	var req struct {
		Question  models.Localized `json:"question"`
		Answer    models.Localized `json:"answer"`
		SortOrder int              `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Question.En == "" || req.Answer.En == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "English question and answer are required"})
	}

	entry := &models.FAQEntry{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Answer:    req.Answer,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("DB error creating FAQ entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create FAQ entry"})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
