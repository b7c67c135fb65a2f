package service

import (
	"edu_eval_backend/internal/config"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	allTimeStart = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	allTimeEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// AllTimePeriod spans every realistic record date, so filtering by it is the identity.
func AllTimePeriod() model.Period {
	return model.Period{
		Name:  "All time",
		Key:   util.AllTimeKey,
		Start: allTimeStart,
		End:   allTimeEnd,
	}
}

func IsAllTime(p model.Period) bool {
	return p.Start.Equal(allTimeStart) && p.End.Equal(allTimeEnd)
}

// PeriodKey encodes [start, end) as "<RFC3339 start>_<RFC3339 end>".
func PeriodKey(start, end time.Time) string {
	return start.Format(time.RFC3339) + "_" + end.Format(time.RFC3339)
}

// FilterByPeriod keeps the records with start <= t < end. Filtering twice with
// the same period returns the same records.
func FilterByPeriod[T model.Timestamped](records []T, p model.Period) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Contains(r.Timestamp()) {
			out = append(out, r)
		}
	}
	return out
}

type periodSettings struct {
	epoch   time.Time
	length  int
	horizon int
}

func newPeriodSettings(cfg config.PeriodConfig) (*periodSettings, error) {
	epoch, err := time.ParseInLocation(util.DateFormat, cfg.Epoch, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse period epoch: %w", err)
	}
	if cfg.LengthMonths <= 0 {
		return nil, fmt.Errorf("period length must be positive, got %d", cfg.LengthMonths)
	}
	if cfg.HorizonMonths < 0 {
		return nil, fmt.Errorf("period horizon must not be negative, got %d", cfg.HorizonMonths)
	}
	return &periodSettings{epoch: epoch, length: cfg.LengthMonths, horizon: cfg.HorizonMonths}, nil
}

// PeriodBucketer cuts time into fixed-width calendar periods starting at an
// epoch. Its settings can be swapped at runtime.
type PeriodBucketer struct {
	settings atomic.Pointer[periodSettings]
}

func NewPeriodBucketer(cfg config.PeriodConfig) (*PeriodBucketer, error) {
	b := &PeriodBucketer{}
	if err := b.Update(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the settings; invalid settings leave the old ones in place.
func (b *PeriodBucketer) Update(cfg config.PeriodConfig) error {
	s, err := newPeriodSettings(cfg)
	if err != nil {
		return err
	}
	b.settings.Store(s)
	return nil
}

// Periods returns the periods from the epoch up to the horizon beyond now, oldest first.
func (b *PeriodBucketer) Periods(now time.Time) []model.Period {
	s := b.settings.Load()
	limit := now.UTC().AddDate(0, s.horizon, 0)

	var periods []model.Period
	for start := s.epoch; start.Before(limit); {
		end := start.AddDate(0, s.length, 0)
		periods = append(periods, model.Period{
			Name:  s.name(start, end),
			Key:   PeriodKey(start, end),
			Start: start,
			End:   end,
		})
		start = end
	}
	return periods
}

// ParsePeriodKey resolves a key produced by PeriodKey. An empty key or "all"
// is the all-time period.
func (b *PeriodBucketer) ParsePeriodKey(key string) (model.Period, error) {
	start, end, allTime, err := util.ParsePeriodBounds(key)
	if err != nil {
		return model.Period{}, err
	}
	if allTime {
		return AllTimePeriod(), nil
	}
	return model.Period{
		Name:  b.settings.Load().name(start, end),
		Key:   PeriodKey(start, end),
		Start: start,
		End:   end,
	}, nil
}

// PreviousPeriod returns the period of equal width ending where p starts.
// There is none for the all-time period or before the epoch.
func (b *PeriodBucketer) PreviousPeriod(p model.Period) (model.Period, bool) {
	if IsAllTime(p) {
		return model.Period{}, false
	}
	s := b.settings.Load()

	var start time.Time
	if p.Start.AddDate(0, s.length, 0).Equal(p.End) {
		start = p.Start.AddDate(0, -s.length, 0)
	} else {
		start = p.Start.Add(-p.End.Sub(p.Start))
	}
	if start.Before(s.epoch) {
		return model.Period{}, false
	}

	return model.Period{
		Name:  s.name(start, p.Start),
		Key:   PeriodKey(start, p.Start),
		Start: start,
		End:   p.Start,
	}, true
}

// name labels grid-aligned periods by year and ordinal ("2024-S2"), anything else by its dates.
func (s *periodSettings) name(start, end time.Time) string {
	aligned := 12%s.length == 0 &&
		start.Day() == 1 && int(start.Month()-1)%s.length == 0 &&
		start.AddDate(0, s.length, 0).Equal(end) &&
		start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0
	if !aligned {
		return start.Format(util.DateFormat) + ".." + end.Format(util.DateFormat)
	}

	ordinal := int(start.Month()-1)/s.length + 1
	switch s.length {
	case 12:
		return fmt.Sprintf("%d", start.Year())
	case 6:
		return fmt.Sprintf("%d-S%d", start.Year(), ordinal)
	case 3:
		return fmt.Sprintf("%d-Q%d", start.Year(), ordinal)
	case 1:
		return fmt.Sprintf("%d-%02d", start.Year(), ordinal)
	default:
		return fmt.Sprintf("%d-P%d", start.Year(), ordinal)
	}
}
