package deadline

import (
	"Taxflow-Backend/domain"
	"fmt"
	"sort"
	"time"
)

const (
	KindVatPreregistration = "VAT_PREREGISTRATION"
	KindVatYearly          = "VAT_YEARLY"
	KindIncomeTax          = "INCOME_TAX"
)

// Upcoming computes the filing deadlines within the given horizon, sorted by
// due date. The computation is calendar-only and needs no stored state.
//
// Quarterly VAT pre-registrations fall due on the 10th of the month following
// the quarter. The yearly VAT return and the income tax return for a year fall
// due on July 31 of the following year.
func Upcoming(now time.Time, horizon time.Duration) []domain.DeadlineResponse {
	limit := now.Add(horizon)
	var out []domain.DeadlineResponse

	// Walk quarters from the one before now so a just-passed deadline still
	// shows up as overdue.
	quarterStart := time.Date(now.Year(), firstMonthOfQuarter(now.Month()), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)
	for due := vatPreregistrationDue(quarterStart); !due.After(limit); due = vatPreregistrationDue(quarterStart) {
		q := (int(quarterStart.Month())-1)/3 + 1
		out = append(out, deadlineAt(
			fmt.Sprintf("VAT pre-registration Q%d/%d", q, quarterStart.Year()),
			KindVatPreregistration, due, now))
		quarterStart = quarterStart.AddDate(0, 3, 0)
	}

	for year := now.Year() - 1; ; year++ {
		due := time.Date(year+1, time.July, 31, 0, 0, 0, 0, time.UTC)
		if due.After(limit) {
			break
		}
		if due.Before(now.AddDate(0, -6, 0)) {
			continue
		}
		out = append(out,
			deadlineAt(fmt.Sprintf("Yearly VAT return %d", year), KindVatYearly, due, now),
			deadlineAt(fmt.Sprintf("Income tax return %d", year), KindIncomeTax, due, now),
		)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].Kind < out[j].Kind
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func deadlineAt(name, kind string, due, now time.Time) domain.DeadlineResponse {
	return domain.DeadlineResponse{
		Name:          name,
		Kind:          kind,
		DueDate:       due,
		RemainingDays: remainingDays(now, due),
		Overdue:       due.Before(truncateDay(now)),
	}
}

func vatPreregistrationDue(quarterStart time.Time) time.Time {
	return time.Date(quarterStart.Year(), quarterStart.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 3, 9) // the 10th of the month after quarter end
}

func firstMonthOfQuarter(m time.Month) time.Month {
	return time.Month(((int(m)-1)/3)*3 + 1)
}

// remainingDays counts whole calendar days, negative once overdue.
func remainingDays(now, due time.Time) int {
	return int(due.Sub(truncateDay(now)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
