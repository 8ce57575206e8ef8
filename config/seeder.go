package config

import (
	"log"

	"gorm.io/gorm"

	"shelfmind_backend/models"
	"shelfmind_backend/utils"
)

// SeedUsers creates the demo store associate and store manager
// accounts used by the landing page's demo login.
func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding demo users...")

	type demoUser struct {
		ID       string
		Email    string
		Password string
		Name     string
		Role     string
	}

	demos := []demoUser{
		{
			ID:       "associate-demo001",
			Email:    "associate@demo.com",
			Password: "demo123",
			Name:     "Alex Johnson",
			Role:     models.RoleAssociate,
		},
		{
			ID:       "manager-demo001",
			Email:    "manager@demo.com",
			Password: "demo456",
			Name:     "Sarah Williams",
			Role:     models.RoleManager,
		},
	}

	for _, d := range demos {
		var existing models.User
		err := db.Where("email = ?", d.Email).First(&existing).Error
		if err == nil {
			log.Printf("User already exists: %s", d.Email)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Failed to check user %s: %v", d.Email, err)
			continue
		}

		hashed, err := utils.HashPassword(d.Password)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", d.Email, err)
			continue
		}

		user := models.User{
			ID:        d.ID,
			Email:     d.Email,
			Password:  hashed,
			Name:      d.Name,
			Role:      d.Role,
			StoreID:   "STORE001",
			StoreName: "Downtown ShelfMind Store",
			IsActive:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to seed user %s: %v", d.Email, err)
		} else {
			log.Printf("User seeded: %s (%s)", user.Name, user.Role)
		}
	}

	log.Println("✅ Seeding complete.")
}
