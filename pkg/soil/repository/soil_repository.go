package repository

import "krishi/entities"

type SoilRepository interface {
	Create(s *entities.SoilRecord) error
	// LatestForCrop returns the most recent reading for a crop, or nil if
	// the crop has none.
	LatestForCrop(cropID uint) (*entities.SoilRecord, error)
	ListByFarmer(farmerID uint) ([]entities.SoilRecord, error)
}
