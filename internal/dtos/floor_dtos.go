package dtos

type UpdateFloorRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Level *int16  `json:"level,omitempty"`
}

// FloorOccupancyDTO is the aggregation returned by the occupancy
// endpoints. Rate is a percentage rounded to one decimal, zero when
// the floor has no locals.
type FloorOccupancyDTO struct {
	FloorID       string  `json:"floor_id"`
	FloorName     string  `json:"floor_name"`
	PropertyID    string  `json:"property_id"`
	TotalLocals   int     `json:"total_locals"`
	Occupied      int     `json:"occupied"`
	Available     int     `json:"available"`
	Maintenance   int     `json:"maintenance"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// OccupancyReportDTO aggregates every floor visible to the caller.
type OccupancyReportDTO struct {
	Floors        []FloorOccupancyDTO `json:"floors"`
	TotalLocals   int                 `json:"total_locals"`
	Occupied      int                 `json:"occupied"`
	Available     int                 `json:"available"`
	Maintenance   int                 `json:"maintenance"`
	OccupancyRate float64             `json:"occupancy_rate"`
}
