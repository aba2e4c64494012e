package deadline

import (
	"Taxflow-Backend/domain"
	"Taxflow-Backend/internal/utils"
	"Taxflow-Backend/internal/utils/mailing"
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	deadlineHorizon  = 400 * 24 * time.Hour
	reminderLeadDays = 14
)

type (
	DeadlineService interface {
		GetDeadlines(ctx context.Context) ([]domain.DeadlineResponse, error)
		SendReminders(ctx context.Context) (int, error)
	}

	deadlineService struct{}
)

func NewDeadlineService() DeadlineService {
	return &deadlineService{}
}

func (s *deadlineService) GetDeadlines(_ context.Context) ([]domain.DeadlineResponse, error) {
	return Upcoming(time.Now(), deadlineHorizon), nil
}

// SendReminders mails one digest covering every deadline due within the lead
// window, including overdue ones. Returns the number of deadlines covered.
func (s *deadlineService) SendReminders(_ context.Context) (int, error) {
	var due []domain.DeadlineResponse
	for _, d := range Upcoming(time.Now(), deadlineHorizon) {
		if d.Overdue || d.RemainingDays <= reminderLeadDays {
			due = append(due, d)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}

	recipient := utils.GetConfig("REPORT_EMAIL")
	if recipient == "" || utils.GetConfig("SMTP_HOST") == "" {
		log.Printf("mail not configured, skipping %d deadline reminder(s)", len(due))
		return 0, nil
	}

	var lines []string
	for _, d := range due {
		state := fmt.Sprintf("due in %d day(s)", d.RemainingDays)
		if d.Overdue {
			state = "OVERDUE"
		}
		lines = append(lines, fmt.Sprintf("<li>%s: %s (%s)</li>", d.Name, d.DueDate.Format("2006-01-02"), state))
	}
	body := "<p>Upcoming tax deadlines:</p><ul>" + strings.Join(lines, "") + "</ul>"

	subject := fmt.Sprintf("Tax deadlines: %d upcoming", len(due))
	if err := mailing.SendMail(recipient, subject, body); err != nil {
		return 0, err
	}
	return len(due), nil
}
