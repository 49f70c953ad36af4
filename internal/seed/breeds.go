package seed

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/models"
)

var initialBreeds = []string{
	"SRD (Sem Raça Definida)", "Poodle", "Pastor Alemão", "Rottweiler",
	"Pitbull", "Yorkshire", "Pinscher", "Fila", "Labrador", "Cofap",
	"Dogue Alemão", "Mestiço", "Fox Paulistinha", "Weimaraner",
	"Shipdog", "Dálmata", "Sharpei", "Terrier", "Dachshund", "Lhasa Apso",
	"American",
}

func Breeds(db *gorm.DB) error {
	log.Println("--- Seeding Breeds ---")
	for _, name := range initialBreeds {
		if _, err := ensureBreed(db, name); err != nil {
			return err
		}
	}
	log.Println("--- Finished Seeding Breeds ---")
	return nil
}

func ensureBreed(db *gorm.DB, name string) (*models.Breed, error) {
	var breed models.Breed
	err := db.Where("LOWER(name) = LOWER(?)", name).First(&breed).Error
	if err == nil {
		return &breed, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	breed = models.Breed{Name: name}
	if err := db.Create(&breed).Error; err != nil {
		return nil, err
	}
	log.Printf("Created breed: %s", name)
	return &breed, nil
}
