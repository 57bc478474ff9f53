package repository

import "krishi/entities"

type CropRepository interface {
	// CreateWithSoil inserts a crop and its initial soil record in one
	// transaction; confirmation of a recommendation must not leave a crop
	// without its baseline reading.
	CreateWithSoil(c *entities.Crop, s *entities.SoilRecord) error
	ListByFarmer(farmerID uint, status entities.CropStatus) ([]entities.Crop, error)
	FindByIDAndFarmer(id, farmerID uint) (*entities.Crop, error)
	UpdateStatus(id, farmerID uint, status entities.CropStatus) error
	// Delete removes the crop and cascades to its soil records, schedule
	// entries and history rows.
	Delete(id, farmerID uint) error
	CountActive(farmerID uint) (int64, error)
}
