package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/models"
)

const defaultOwnerName = "Marcelo Pontes Rodrigues"

// FromCSV importa o dataset legado: arquivo latin-1, separado por
// ponto e vírgula. Linha sem id_db_original é pulada; erro em uma
// linha é registrado e a importação segue.
func FromCSV(db *gorm.DB, cfg *config.Config, path string) error {
	log.Println("--- Seeding data from CSV file ---")

	var vet models.User
	if err := db.Where("email = ?", cfg.FirstVetEmail).First(&vet).Error; err != nil {
		return fmt.Errorf("default user %q not found, run user seed first", cfg.FirstVetEmail)
	}

	defaultOwner, err := ensureDefaultOwner(db)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Printf("csv line %d: %v", line, err)
			continue
		}

		row := rowMap(header, record)
		if row["id_db_original"] == "" {
			continue
		}

		if err := importRow(db, row, defaultOwner, &vet); err != nil {
			log.Printf("csv line %d (%s): %v", line, row["id_db_original"], err)
		}
	}

	log.Println("--- Finished seeding from CSV ---")
	return nil
}

func importRow(db *gorm.DB, row map[string]string, defaultOwner *models.Owner, vet *models.User) error {
	owner := defaultOwner
	if name := strings.TrimSpace(row["proprietario"]); name != "" {
		found, err := ensureOwner(db, name)
		if err != nil {
			return err
		}
		owner = found
	}

	breedName := row["raca"]
	if breedName == "" {
		breedName = "SRD (Sem Raça Definida)"
	}
	breed, err := ensureBreed(db, breedName)
	if err != nil {
		return err
	}

	originalID := row["id_db_original"]
	animal, err := ensureAnimal(db, row, originalID, owner, breed)
	if err != nil {
		return err
	}

	as := clinicalFromRow(row)
	as.AnimalID = animal.ID
	as.UserID = vet.ID
	return db.Create(&as).Error
}

func ensureDefaultOwner(db *gorm.DB) (*models.Owner, error) {
	owner, err := findOwner(db, defaultOwnerName)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.Owner{
		Name:         defaultOwnerName,
		Phone:        "+5586994244568",
		Address:      "Rua A",
		Neighborhood: "Reis Veloso",
		City:         "Parnaíba",
		State:        "PI",
	}
	if err := db.Create(&created).Error; err != nil {
		return nil, err
	}
	log.Println("Default owner created successfully.")
	return &created, nil
}

func ensureOwner(db *gorm.DB, name string) (*models.Owner, error) {
	owner, err := findOwner(db, name)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.Owner{Name: name}
	if err := db.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func findOwner(db *gorm.DB, name string) (*models.Owner, error) {
	var owner models.Owner
	if err := db.Where("LOWER(name) = LOWER(?)", name).First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func ensureAnimal(
	db *gorm.DB,
	row map[string]string,
	originalID string,
	owner *models.Owner,
	breed *models.Breed,
) (*models.Animal, error) {

	var animal models.Animal
	err := db.Where("original_id = ?", originalID).First(&animal).Error
	if err == nil {
		return &animal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := row["nome"]
	if name == "" {
		name = "Nome Não Informado"
	}

	animal = models.Animal{
		Name:       name,
		OriginalID: &originalID,
		Sex:        row["sexo"],
		OwnerID:    owner.ID,
		BreedID:    breed.ID,
	}
	if err := db.Create(&animal).Error; err != nil {
		return nil, err
	}
	log.Printf("Created Animal: %s (%s)", animal.Name, originalID)
	return &animal, nil
}

func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(record) {
			row[strings.TrimSpace(col)] = strings.TrimSpace(record[i])
		}
	}
	return row
}
