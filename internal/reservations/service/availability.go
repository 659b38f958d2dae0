package service

import (
	apperrors "campsite/pkg/errors"
	"campsite/pkg/metrics"
	"campsite/pkg/model"
	"context"
	"sort"
	"time"
)

const oneDay = 24 * time.Hour

// GetAvailability lists the free blocks inside the query window. The window
// defaults to the configured number of days starting tomorrow; from and to
// replace either end.
func (s *reservationService) GetAvailability(ctx context.Context, from, to *time.Time) ([]model.Availability, error) {
	windowFrom := s.clock().Add(oneDay)
	windowTo := windowFrom.Add(s.cfg.AvailabilityWindow())
	if from != nil {
		windowFrom = *from
	}
	if to != nil {
		windowTo = *to
	}
	if windowFrom.After(windowTo) {
		return nil, apperrors.InvalidInput("from must not be after to")
	}

	reserved, err := s.repo.FindInRange(ctx, windowFrom, windowTo)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservations for availability", "error", err)
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	metrics.RecordAvailabilityRequest()
	return freeBlocks(reserved, windowFrom, windowTo), nil
}

// freeBlocks walks reservations in start order and emits the gaps between
// them as inclusive day ranges.
func freeBlocks(reserved []*model.Reservation, windowFrom, windowTo time.Time) []model.Availability {
	if len(reserved) == 0 {
		return []model.Availability{{FromDate: windowFrom, ToDate: windowTo}}
	}

	sorted := make([]*model.Reservation, len(reserved))
	copy(sorted, reserved)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromDate.Before(sorted[j].FromDate)
	})

	blocks := make([]model.Availability, 0, len(sorted)+1)
	cursor := windowFrom
	for _, r := range sorted {
		end := r.FromDate.Add(-oneDay)
		if !cursor.After(end) {
			blocks = append(blocks, model.Availability{FromDate: cursor, ToDate: end})
		}
		if next := r.ToDate.Add(oneDay); next.After(cursor) {
			cursor = next
		}
	}
	if !cursor.After(windowTo) {
		blocks = append(blocks, model.Availability{FromDate: cursor, ToDate: windowTo})
	}
	return blocks
}
