package services

import (
	"errors"
	"testing"

	"ghazaltech-backend/models"
)

func TestApplyProofUploadForcesUnderReview(t *testing.T) {
	priors := []models.PaymentStatus{
		models.PaymentStatusPending,
		models.PaymentStatusUnderReview,
		models.PaymentStatusApproved,
		models.PaymentStatusRejected,
	}
	for _, prior := range priors {
		payment := models.MilestonePayment{Status: prior}
		applyProofUpload(&payment, "https://cdn.example.com/proofs/p1.png")

		if payment.Status != models.PaymentStatusUnderReview {
			t.Fatalf("prior %s: status = %s, want %s", prior, payment.Status, models.PaymentStatusUnderReview)
		}
		if payment.ProofURL == nil || *payment.ProofURL != "https://cdn.example.com/proofs/p1.png" {
			t.Fatalf("prior %s: proof URL not recorded", prior)
		}
	}
}

func TestNormalizeChangeRequestClient(t *testing.T) {
	title, desc, amount, err := normalizeChangeRequest(models.RoleClient, "New landing page", "Add a hero section", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "New landing page" {
		t.Fatalf("title = %q", title)
	}
	if desc == nil || *desc != "Add a hero section" {
		t.Fatalf("description = %v, want set", desc)
	}
	// clients never set the price, whatever they send
	if amount != 0 {
		t.Fatalf("amount = %v, want 0", amount)
	}
}

func TestNormalizeChangeRequestClientNeedsDescription(t *testing.T) {
	_, _, _, err := normalizeChangeRequest(models.RoleClient, "New landing page", "   ", 0)
	var ve *validationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalizeChangeRequestStaff(t *testing.T) {
	title, desc, amount, err := normalizeChangeRequest(models.RoleAdmin, "Extra revision round", "", 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Extra revision round" {
		t.Fatalf("title = %q", title)
	}
	if desc != nil {
		t.Fatalf("description = %v, want nil for empty staff description", *desc)
	}
	if amount != 25 {
		t.Fatalf("amount = %v, want 25", amount)
	}
}

func TestNormalizeChangeRequestStaffNeedsPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -10} {
		_, _, _, err := normalizeChangeRequest(models.RolePartner, "Extra work", "", amount)
		var ve *validationError
		if !errors.As(err, &ve) {
			t.Fatalf("amount %v: expected validation error, got %v", amount, err)
		}
	}
}

func TestNormalizeChangeRequestTitleRequired(t *testing.T) {
	_, _, _, err := normalizeChangeRequest(models.RoleAdmin, "  ", "desc", 10)
	var ve *validationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
