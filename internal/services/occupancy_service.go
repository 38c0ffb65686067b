package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type OccupancyService interface {
	// FloorOccupancy aggregates the locals of a single floor by status.
	FloorOccupancy(ctx context.Context, actor Actor, floorID uuid.UUID) (*dtos.FloorOccupancyDTO, error)
	// Report aggregates every floor the actor can see.
	Report(ctx context.Context, actor Actor) (*dtos.OccupancyReportDTO, error)
}

type occupancyService struct {
	floorRepo repositories.FloorRepository
	localRepo repositories.LocalRepository
	propRepo  repositories.PropertyRepository
}

func NewOccupancyService(
	floorRepo repositories.FloorRepository,
	localRepo repositories.LocalRepository,
	propRepo repositories.PropertyRepository,
) OccupancyService {
	return &occupancyService{floorRepo: floorRepo, localRepo: localRepo, propRepo: propRepo}
}

// occupancyRate is occupied over total as a percentage, rounded to one
// decimal. Zero when the floor has no locals.
func occupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}

func (s *occupancyService) FloorOccupancy(ctx context.Context, actor Actor, floorID uuid.UUID) (*dtos.FloorOccupancyDTO, error) {
	f, err := s.floorRepo.GetByID(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.propRepo.GetByID(ctx, f.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}

	counts, err := s.localRepo.CountByFloorID(ctx, floorID)
	if err != nil {
		return nil, err
	}
	dto := buildFloorOccupancy(f, counts)
	return &dto, nil
}

func (s *occupancyService) Report(ctx context.Context, actor Actor) (*dtos.OccupancyReportDTO, error) {
	floors, err := s.floorRepo.ListVisible(ctx, actor.ScopeManagerID())
	if err != nil {
		return nil, err
	}

	report := &dtos.OccupancyReportDTO{Floors: make([]dtos.FloorOccupancyDTO, 0, len(floors))}
	for _, f := range floors {
		counts, err := s.localRepo.CountByFloorID(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		report.Floors = append(report.Floors, buildFloorOccupancy(f, counts))
		report.TotalLocals += counts.Total
		report.Occupied += counts.Occupied
		report.Available += counts.Available
		report.Maintenance += counts.Maintenance
	}
	report.OccupancyRate = occupancyRate(report.Occupied, report.TotalLocals)
	return report, nil
}

func buildFloorOccupancy(f *models.Floor, c repositories.StatusCounts) dtos.FloorOccupancyDTO {
	return dtos.FloorOccupancyDTO{
		FloorID:       f.ID.String(),
		FloorName:     f.Name,
		PropertyID:    f.PropertyID.String(),
		TotalLocals:   c.Total,
		Occupied:      c.Occupied,
		Available:     c.Available,
		Maintenance:   c.Maintenance,
		OccupancyRate: occupancyRate(c.Occupied, c.Total),
	}
}
