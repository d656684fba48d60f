// services/scheduler.go
package services

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"ghazaltech-backend/models"
)

// StartMaintenanceScheduler runs the periodic housekeeping jobs: payment
// reminders every hour and project auto-archiving once a day.
func (s *ProjectService) StartMaintenanceScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Hourly: remind staff about payments sitting in review or overdue
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-48 * time.Hour)
			var stale []models.MilestonePayment
			err := s.DB.Where("status = ? AND updated_at <= ? AND archived_at IS NULL",
				models.PaymentStatusUnderReview, cutoff).
				Find(&stale).Error
			if err != nil {
				log.Printf("[Scheduler] DB error loading stale payments: %v", err)
				return
			}
			for _, p := range stale {
				s.Notifier.Queue(
					fmt.Sprintf("Payment review pending 48h+: %s", p.Label),
					fmt.Sprintf("Payment %s on project %s has been UNDER_REVIEW since %s.",
						p.ID, p.ProjectID, p.UpdatedAt.Format(time.RFC3339)),
				)
			}

			now := time.Now()
			var overdue []models.MilestonePayment
			err = s.DB.Where("status = ? AND due_date IS NOT NULL AND due_date <= ? AND archived_at IS NULL",
				models.PaymentStatusPending, now).
				Find(&overdue).Error
			if err != nil {
				log.Printf("[Scheduler] DB error loading overdue payments: %v", err)
				return
			}
			for _, p := range overdue {
				s.Notifier.Queue(
					fmt.Sprintf("Milestone payment overdue: %s", p.Label),
					fmt.Sprintf("Payment %s on project %s was due %s and is still PENDING.",
						p.ID, p.ProjectID, p.DueDate.Format("2006-01-02")),
				)
			}
		}),
	)

	// Daily: archive projects delivered more than 30 days ago
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().AddDate(0, 0, -30)
			var projects []models.Project
			err := s.DB.Where("status = ? AND archived_at IS NULL AND updated_at <= ?",
				models.ProjectStatusDelivered, cutoff).
				Find(&projects).Error
			if err != nil {
				log.Printf("[Scheduler] DB error loading delivered projects: %v", err)
				return
			}
			for _, p := range projects {
				now := time.Now()
				p.ArchivedAt = &now
				if err := s.DB.Save(&p).Error; err != nil {
					log.Printf("[Scheduler] Failed to archive project %s: %v", p.ID, err)
				} else {
					log.Printf("✅ Auto-archived delivered project: %s", p.Title)
				}
			}
		}),
	)
}
