package seed

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/infopontes/leishai-backend/internal/config"
	"github.com/infopontes/leishai-backend/internal/models"
	"github.com/infopontes/leishai-backend/internal/security"
)

var rolesToCreate = []models.Role{
	{Name: "admin", Description: "System Administrator"},
	{Name: "veterinario", Description: "Veterinarian user"},
	{Name: "coordenador", Description: "Coordinator user"},
}

// RolesAndUsers garante os três perfis e os dois usuários de bootstrap.
// Rodar de novo não duplica nada.
func RolesAndUsers(db *gorm.DB, cfg *config.Config) error {
	log.Println("--- Seeding Roles and Users ---")

	for _, role := range rolesToCreate {
		if err := ensureRole(db, role); err != nil {
			return err
		}
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}
	var vetRole models.Role
	if err := db.Where("name = ?", "veterinario").First(&vetRole).Error; err != nil {
		return err
	}

	if err := ensureUser(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword, &adminRole); err != nil {
		return err
	}
	if err := ensureUser(db, cfg.FirstVetEmail, cfg.FirstVetPassword, &vetRole); err != nil {
		return err
	}

	log.Println("--- Finished Seeding Roles and Users ---")
	return nil
}

func ensureRole(db *gorm.DB, role models.Role) error {
	var existing models.Role
	err := db.Where("name = ?", role.Name).First(&existing).Error
	if err == nil {
		log.Printf("Role '%s' already exists. Skipping.", role.Name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(&role).Error; err != nil {
		return err
	}
	log.Printf("Created role: %s", role.Name)
	return nil
}

func ensureUser(db *gorm.DB, email, password string, role *models.Role) error {
	if password == "" {
		log.Printf("No bootstrap password configured for %s. Skipping.", email)
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("User '%s' already exists. Skipping.", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		RoleID:       &role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Created user: %s (%s)", email, role.Name)
	return nil
}
