package services

import (
	"context"
	"log"

	"nfc-coop/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled jobs: the nightly overdue-loan sweep and
// refresh-token housekeeping.
type CronService struct {
	cron             *cron.Cron
	loanService      *LoanService
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	loanService := NewLoanService(
		db,
		repositories.NewLoanRepository(db),
		repositories.NewLoanTypeRepository(db),
		repositories.NewLoanRepaymentRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewSettingRepository(db),
	)
	return &CronService{
		cron:             cron.New(),
		loanService:      loanService,
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start schedules and launches all jobs
func (s *CronService) Start() {
	// Overdue sweep at 01:00 daily
	s.cron.AddFunc("0 1 * * *", func() {
		marked, err := s.loanService.MarkOverdue(context.Background())
		if err != nil {
			log.Printf("❌ Overdue loan sweep failed: %v", err)
			return
		}
		if marked > 0 {
			log.Printf("⚠️ Overdue loan sweep marked %d loans Defaulted", marked)
		}
	})

	// Purge expired refresh tokens at 02:00 daily
	s.cron.AddFunc("0 2 * * *", func() {
		if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
			log.Printf("❌ Refresh token cleanup failed: %v", err)
		}
	})

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}
