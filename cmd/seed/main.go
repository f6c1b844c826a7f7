// Command seed bootstraps a fresh deployment: the service catalogue and
// the single SUPER_ADMIN account. Safe to re-run; existing rows are left
// alone.
package main

import (
	"errors"
	"log"
	"os"

	"rezopay/internal/config"
	"rezopay/internal/models"
	"rezopay/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var catalogue = []models.Service{
	{Category: "Recharge", Code: "MOBILE", Name: "Mobile Recharge"},
	{Category: "Recharge", Code: "DTH", Name: "DTH Recharge"},
	{Category: "Banking", Code: "AEPS", Name: "Aadhaar Enabled Payment System"},
	{Category: "Banking", Code: "DMT", Name: "Domestic Money Transfer"},
	{Category: "Utility", Code: "BBPS", Name: "Bill Payment"},
}

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seedServices()
	seedSuperAdmin(adminEmail, adminPassword)
}

func seedServices() {
	for _, svc := range catalogue {
		var existing models.Service
		err := repositories.DB.Where("code = ?", svc.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up service %s: %v", svc.Code, err)
		}

		if err := repositories.DB.Create(&svc).Error; err != nil {
			log.Fatalf("Failed to create service %s: %v", svc.Code, err)
		}
		log.Printf("Created service %s (%s)", svc.Code, svc.Name)
	}
}

func seedSuperAdmin(email, password string) {
	var count int64
	if err := repositories.DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		log.Fatalf("Failed to count super admins: %v", err)
	}
	if count > 0 {
		log.Println("Super admin already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Name:         "Super Admin",
		Email:        email,
		Password:     string(hashedPassword),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create super admin:", err)
	}

	log.Println("Super admin account created")
}
