package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/internal/config"
	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// GeneratePeriod generates the roster for every date in [start, end],
// deriving each day's duty type from its weekday and the configured
// holiday calendar. Each date is its own atomic unit; the run stops at
// the first failing date and reports it, leaving earlier dates
// committed. Returns how many days were generated.
func GeneratePeriod(ctx context.Context, store db.Store, cfg *config.Config, logger *zap.Logger, start, end string) (int, error) {
	startDate, err := model.ParseDate(start)
	if err != nil {
		return 0, &ValidationError{Field: "start date", Reason: err.Error()}
	}
	endDate, err := model.ParseDate(end)
	if err != nil {
		return 0, &ValidationError{Field: "end date", Reason: err.Error()}
	}
	if start > end {
		return 0, &ValidationError{Field: "date range", Reason: "start date is after end date"}
	}

	holidays, err := cfg.HolidayCalendar()
	if err != nil {
		return 0, &ValidationError{Field: "holiday rules", Reason: err.Error()}
	}
	weekend := cfg.WeekendSet()

	logger.Info("Generating period", zap.String("start", start), zap.String("end", end))

	generated := 0
	for t := startDate; !t.After(endDate); t = t.AddDate(0, 0, 1) {
		date := model.FormatDate(t)
		dutyType := dutyTypeFor(t, weekend, holidays)

		if err := GenerateDay(ctx, store, logger, date, dutyType); err != nil {
			logger.Warn("Period generation stopped",
				zap.String("date", date),
				zap.Int("days_generated", generated),
				zap.Error(err))
			return generated, &DateError{Date: date, Err: err}
		}
		generated++
	}

	logger.Info("Period generated", zap.Int("days", generated))
	return generated, nil
}

// dutyTypeFor classifies a date: weekend weekdays and holidays run the
// weekend/holiday routine, everything else the normal routine.
func dutyTypeFor(t time.Time, weekend map[time.Weekday]bool, holidays *config.HolidayCalendar) model.DutyType {
	if weekend[t.Weekday()] || holidays.IsHoliday(t) {
		return model.DutyWeekend
	}
	return model.DutyNormal
}
