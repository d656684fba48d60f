package services

import (
	"errors"
	"testing"

	"ghazaltech-backend/models"
)

func TestValidateReviewSubmissionRequiresDeliveredProject(t *testing.T) {
	blocked := []models.ProjectStatus{
		models.ProjectStatusPlanning,
		models.ProjectStatusInProgress,
		models.ProjectStatusReview,
		models.ProjectStatusOnHold,
	}
	for _, status := range blocked {
		err := validateReviewSubmission(status, 4)
		var ve *validationError
		if !errors.As(err, &ve) {
			t.Fatalf("status %s: expected validation error, got %v", status, err)
		}
	}

	if err := validateReviewSubmission(models.ProjectStatusDelivered, 4); err != nil {
		t.Fatalf("delivered project: unexpected error %v", err)
	}
}

func TestValidateReviewSubmissionRatingRange(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		err := validateReviewSubmission(models.ProjectStatusDelivered, rating)
		var ve *validationError
		if !errors.As(err, &ve) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		if err := validateReviewSubmission(models.ProjectStatusDelivered, rating); err != nil {
			t.Fatalf("rating %d: unexpected error %v", rating, err)
		}
	}
}
