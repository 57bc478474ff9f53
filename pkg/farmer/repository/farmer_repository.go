package repository

import "krishi/entities"

type FarmerRepository interface {
	Create(f *entities.Farmer) error
	FindByUsername(username string) (*entities.Farmer, error)
	FindByID(id uint) (*entities.Farmer, error)
	TouchLastLogin(id uint) error
}
