package service

import (
	"context"
	"time"

	"github.com/Dan9191/gastos-service/internal/recurrence"
	"github.com/Dan9191/gastos-service/internal/utils"
)

// SendDueReminders notifies the owners of monthly bills falling due on day.
// Delivery failures are logged and skipped; the count of sent reminders is
// returned.
func (s *Service) SendDueReminders(ctx context.Context, day time.Time) (int, error) {
	day = utils.DateOnly(day)
	reminders, err := s.repo.ListBillReminders(ctx, day)
	if err != nil {
		s.log.WithError(err).Error("Failed to load bill reminders")
		return 0, err
	}

	month := recurrence.MonthOf(day)
	sent := 0
	for _, r := range reminders {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		schedule, err := billSchedule(r.Bill)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping reminder for bill %d", r.ID)
			continue
		}
		for _, occ := range schedule.In(month) {
			if !utils.DateOnly(occ.Date).Equal(day) {
				continue
			}
			if err := s.notifier.SendBillReminder(r.Email, r.NomeCompleto, r.Bill, occ.Date); err != nil {
				s.log.WithError(err).Errorf("Failed to send reminder for bill %d to %s", r.ID, r.Email)
				continue
			}
			sent++
		}
	}

	s.log.Infof("Sent %d bill reminders for %s", sent, utils.FormatDate(day))
	return sent, nil
}
