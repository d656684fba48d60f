package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type ProjectService struct {
	DB       *gorm.DB
	Notifier *NotificationService
}

func NewProjectService(db *gorm.DB, notifier *NotificationService) *ProjectService {
	return &ProjectService{DB: db, Notifier: notifier}
}

// --- Project reads ---

// GetMyProjects lists the caller's projects through their orders.
func (s *ProjectService) GetMyProjects(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var projects []models.Project
	query := s.DB.Joins("JOIN orders ON orders.id = projects.order_id").
		Order("projects.created_at DESC")
	if !sess.Role.IsStaff() {
		query = query.Where("orders.user_id = ?", sess.UserID)
	}
	if err := query.Find(&projects).Error; err != nil {
		log.Printf("DB error listing projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list projects"})
	}
	return c.JSON(projects)
}

// GetProject returns a project with its phases, payments, invoices, change
// requests and review, guard applied.
func (s *ProjectService) GetProject(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	project, err := projectForCaller(s.DB, c.Params("id"), sess)
	if respondAccessError(c, err) {
		return nil
	}

	if err := s.DB.
		Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, created_at ASC") }).
		Preload("Phases.Deliverables").
		Preload("Phases.Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Phases.Comments.Attachment").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Invoices").
		Preload("ChangeRequests").
		Preload("Review").
		First(project, "id = ?", project.ID).Error; err != nil {
		log.Printf("DB error loading project detail: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load project"})
	}
	return c.JSON(project)
}

// UpdateProjectStatus (staff) sets the project status.
func (s *ProjectService) UpdateProjectStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.ProjectStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	switch req.Status {
	case models.ProjectStatusPlanning, models.ProjectStatusInProgress, models.ProjectStatusReview,
		models.ProjectStatusDelivered, models.ProjectStatusOnHold:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project status"})
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	project.Status = req.Status
	if err := s.DB.Save(&project).Error; err != nil {
		log.Printf("DB error updating project status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update project"})
	}
	return c.JSON(project)
}

// ArchiveProject (staff) toggles the archive timestamp.
func (s *ProjectService) ArchiveProject(c *fiber.Ctx) error {
	var req struct {
		Archived bool `json:"archived"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if req.Archived {
		now := time.Now()
		project.ArchivedAt = &now
	} else {
		project.ArchivedAt = nil
	}
	if err := s.DB.Save(&project).Error; err != nil {
		log.Printf("DB error archiving project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to archive project"})
	}
	return c.JSON(project)
}

// --- Phases ---

// CreatePhase (staff) adds a phase. Title and status group are required;
// sort order defaults to 0.
func (s *ProjectService) CreatePhase(c *fiber.Ctx) error {
	var req struct {
		StatusGroup string             `json:"status_group"`
		Title       string             `json:"title"`
		Description string             `json:"description"`
		DueDate     *time.Time         `json:"due_date"`
		Status      models.PhaseStatus `json:"status"`
		SortOrder   *int               `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.StatusGroup == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and status_group are required"})
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	status := req.Status
	if status == "" {
		status = models.PhaseStatusPending
	}
	switch status {
	case models.PhaseStatusPending, models.PhaseStatusInProgress, models.PhaseStatusCompleted, models.PhaseStatusBlocked:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phase status"})
	}

	phase := &models.ProjectPhase{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		StatusGroup: req.StatusGroup,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
	}
	if req.SortOrder != nil {
		phase.SortOrder = *req.SortOrder
	}

	if err := s.DB.Create(phase).Error; err != nil {
		log.Printf("DB error creating phase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create phase"})
	}
	return c.Status(fiber.StatusCreated).JSON(phase)
}

// UpdatePhase (staff) patches phase fields. Any status in the fixed set is
// freely settable — no transition machine beyond the enum.
func (s *ProjectService) UpdatePhase(c *fiber.Ctx) error {
	var phase models.ProjectPhase
	if err := s.DB.First(&phase, "id = ? AND project_id = ?", c.Params("phase_id"), c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Phase not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		StatusGroup *string             `json:"status_group"`
		Title       *string             `json:"title"`
		Description *string             `json:"description"`
		DueDate     *time.Time          `json:"due_date"`
		Status      *models.PhaseStatus `json:"status"`
		SortOrder   *int                `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Status != nil {
		switch *req.Status {
		case models.PhaseStatusPending, models.PhaseStatusInProgress, models.PhaseStatusCompleted, models.PhaseStatusBlocked:
			phase.Status = *req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid phase status"})
		}
	}
	if req.StatusGroup != nil {
		phase.StatusGroup = *req.StatusGroup
	}
	if req.Title != nil {
		phase.Title = *req.Title
	}
	if req.Description != nil {
		phase.Description = *req.Description
	}
	if req.DueDate != nil {
		phase.DueDate = req.DueDate
	}
	if req.SortOrder != nil {
		phase.SortOrder = *req.SortOrder
	}

	if err := s.DB.Save(&phase).Error; err != nil {
		log.Printf("DB error updating phase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update phase"})
	}
	return c.JSON(phase)
}

// DeletePhase removes a phase and its deliverables/comments (staff).
func (s *ProjectService) DeletePhase(c *fiber.Ctx) error {
	var phase models.ProjectPhase
	if err := s.DB.First(&phase, "id = ? AND project_id = ?", c.Params("phase_id"), c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Phase not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phase_id = ?", phase.ID).Delete(&models.PhaseDeliverable{}).Error; err != nil {
			return err
		}
		var commentIDs []string
		if err := tx.Model(&models.PhaseComment{}).Where("phase_id = ?", phase.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentAttachment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("phase_id = ?", phase.ID).Delete(&models.PhaseComment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&phase).Error
	})
	if err != nil {
		log.Printf("DB error deleting phase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete phase"})
	}
	return c.JSON(fiber.Map{"message": "Phase deleted successfully"})
}

// UploadDeliverable (staff) attaches an asset file to a phase via R2.
func (s *ProjectService) UploadDeliverable(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var phase models.ProjectPhase
	if err := s.DB.First(&phase, "id = ? AND project_id = ?", c.Params("phase_id"), c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Phase not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	key := fmt.Sprintf("deliverables/%s/%s%s", phase.ID, uuid.NewString(), filepath.Ext(file.Filename))
	upload, err := utils.UploadFileToR2(file, key)
	if err != nil {
		log.Printf("R2 upload failed for deliverable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload deliverable"})
	}

	deliverable := &models.PhaseDeliverable{
		ID:           uuid.NewString(),
		PhaseID:      phase.ID,
		Title:        c.FormValue("title", file.Filename),
		FileURL:      upload.URL,
		UploadedByID: sess.UserID,
	}
	if err := s.DB.Create(deliverable).Error; err != nil {
		log.Printf("DB error saving deliverable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save deliverable"})
	}
	return c.Status(fiber.StatusCreated).JSON(deliverable)
}

// --- Comments ---

// AddPhaseComment posts a comment on a phase. Requires the access guard, a
// phase belonging to the addressed project, and either a non-empty body or
// an attachment. Staff get notified about every new comment.
func (s *ProjectService) AddPhaseComment(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	project, err := projectForCaller(s.DB, c.Params("id"), sess)
	if respondAccessError(c, err) {
		return nil
	}

	var phase models.ProjectPhase
	if err := s.DB.First(&phase, "id = ? AND project_id = ?", c.Params("phase_id"), project.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Phase not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	body := strings.TrimSpace(c.FormValue("body"))
	file, fileErr := c.FormFile("attachment")
	hasAttachment := fileErr == nil && file != nil && file.Size > 0

	if body == "" && !hasAttachment {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment body or attachment is required"})
	}

	var upload *utils.UploadResult
	if hasAttachment {
		key := fmt.Sprintf("comments/%s/%s%s", phase.ID, uuid.NewString(), filepath.Ext(file.Filename))
		upload, err = utils.UploadFileToR2(file, key)
		if err != nil {
			log.Printf("R2 upload failed for comment attachment: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload attachment"})
		}
	}

	comment := &models.PhaseComment{
		ID:       uuid.NewString(),
		PhaseID:  phase.ID,
		AuthorID: sess.UserID,
		Body:     body,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if upload != nil {
			attachment := &models.CommentAttachment{
				ID:         uuid.NewString(),
				CommentID:  comment.ID,
				URL:        upload.URL,
				StorageKey: upload.Key,
			}
			if err := tx.Create(attachment).Error; err != nil {
				return err
			}
			comment.Attachment = attachment
		}
		return nil
	})
	if err != nil {
		log.Printf("DB error saving comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save comment"})
	}

	s.Notifier.Queue(
		fmt.Sprintf("New comment on %s / %s", project.Title, phase.Title),
		fmt.Sprintf("Project: %s\nPhase: %s\nAuthor: %s\n\n%s", project.Title, phase.Title, sess.UserID, body),
	)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// --- Review ---

// validateReviewSubmission gates review writes: only a DELIVERED project can
// be reviewed, and ratings live on a 1..5 scale.
func validateReviewSubmission(status models.ProjectStatus, rating int) error {
	if status != models.ProjectStatusDelivered {
		return errValidation("project not completed")
	}
	if rating < 1 || rating > 5 {
		return errValidation("rating must be between 1 and 5")
	}
	return nil
}

// SubmitReview creates or updates the single review of a delivered project.
// Fails when the project is not DELIVERED, the rating is out of range, or
// the review is locked by a published portfolio item. Responds 201 on first
// submission, 200 on an update.
func (s *ProjectService) SubmitReview(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	project, err := projectForCaller(s.DB, c.Params("id"), sess)
	if respondAccessError(c, err) {
		return nil
	}

	if err := validateReviewSubmission(project.Status, req.Rating); respondAccessError(c, err) {
		return nil
	}

	var review models.Review
	created := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("project_id = ?", project.ID).First(&review).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if findErr == nil {
			// review exists — locked once a published portfolio item
			// references the project
			var locked int64
			if err := tx.Model(&models.PortfolioItem{}).
				Where("project_id = ? AND status = ?", project.ID, models.ContentStatusPublished).
				Count(&locked).Error; err != nil {
				return err
			}
			if locked > 0 {
				return errForbidden("review is locked")
			}
			review.Rating = req.Rating
			review.Comment = req.Comment
			return tx.Save(&review).Error
		}

		created = true
		review = models.Review{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			AuthorID:  sess.UserID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		return tx.Create(&review).Error
	})
	if respondAccessError(c, err) {
		return nil
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(review)
	}
	return c.JSON(review)
}
