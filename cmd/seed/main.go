package main

import (
	"encoding/json"
	"fmt"
	"log"

	"dressup/internal/database"
	"dressup/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("dressup.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Contact{},
		&domain.RefreshToken{},
		&domain.Product{},
		&domain.Category{},
		&domain.ProductCategory{},
		&domain.ProductRating{},
		&domain.ProductReview{},
		&domain.Closet{},
		&domain.ClosetItem{},
		&domain.Subscription{},
		&domain.PaymentHistory{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payment_histories")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM closet_items")
	db.Exec("DELETE FROM closets")
	db.Exec("DELETE FROM product_reviews")
	db.Exec("DELETE FROM product_ratings")
	db.Exec("DELETE FROM product_categories")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM contacts")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin1!pass"), bcrypt.DefaultCost)
	adminPass := string(adminHash)
	admin := domain.User{
		Email:       "admin@dressup.app",
		Password:    &adminPass,
		FirstName:   "Admin",
		Role:        domain.RoleAdmin,
		IsActive:    true,
		IsActivated: true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@dressup.app / admin1!pass")

	users := []domain.User{}
	for i, email := range []string{"aiko@example.com", "mira@example.com", "noah@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user1!pass"), bcrypt.DefaultCost)
		pass := string(hash)
		u := domain.User{
			Email:       email,
			Password:    &pass,
			FirstName:   fmt.Sprintf("User%d", i+1),
			Role:        domain.RoleUser,
			IsActive:    true,
			IsActivated: true,
		}
		db.Create(&u)
		users = append(users, u)
	}

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")
	categories := []domain.Category{
		{Name: "tops", DisplayName: "Tops"},
		{Name: "bottoms", DisplayName: "Bottoms"},
		{Name: "outerwear", DisplayName: "Outerwear"},
		{Name: "shoes", DisplayName: "Shoes"},
		{Name: "accessories", DisplayName: "Accessories"},
	}
	for i := range categories {
		db.Create(&categories[i])
	}

	// ================== SUBSCRIPTIONS ==================
	log.Println("Creating subscriptions...")
	subscriptions := []domain.Subscription{
		{Name: "PREMIUM1 monthly", Description: "Premium tier 1, billed monthly", Price: 14000, BillingPeriodInDays: 30},
		{Name: "PREMIUM1 yearly", Description: "Premium tier 1, billed yearly", Price: 17000, BillingPeriodInDays: 365},
		{Name: "PREMIUM2 monthly", Description: "Premium tier 2, billed monthly", Price: 150000, BillingPeriodInDays: 30},
		{Name: "PREMIUM2 yearly", Description: "Premium tier 2, billed yearly", Price: 180000, BillingPeriodInDays: 365},
	}
	for i := range subscriptions {
		db.Create(&subscriptions[i])
	}

	// ================== PRODUCTS ==================
	log.Println("Creating products...")
	names := []string{"Linen shirt", "Denim jacket", "Pleated skirt", "Leather boots", "Wool coat", "Silk scarf"}
	brands := []string{"Uniqlo", "Levi's", "Zara", "Dr. Martens", "COS", "Hermes"}
	for i, name := range names {
		owner := users[i%len(users)]
		images, _ := json.Marshal([]string{fmt.Sprintf("/static/demo/%d.jpg", i+1)})
		p := domain.Product{
			OwnerID:     owner.ID,
			Name:        name,
			Description: fmt.Sprintf("%s from %s", name, brands[i]),
			Brand:       brands[i],
			IsPublic:    i%2 == 0,
			ImageURLs:   string(images),
		}
		db.Create(&p)
		db.Create(&domain.ProductCategory{ProductID: p.ID, CategoryID: categories[i%len(categories)].ID})
	}

	// ================== PAYMENTS ==================
	log.Println("Creating payment history...")
	db.Create(&domain.PaymentHistory{
		UserID:         users[0].ID,
		SubscriptionID: subscriptions[0].ID,
		Price:          subscriptions[0].Price,
		Status:         domain.PaymentStatusSuccess,
	})
	db.Create(&domain.PaymentHistory{
		UserID:         users[1].ID,
		SubscriptionID: subscriptions[2].ID,
		Price:          subscriptions[2].Price,
		Status:         domain.PaymentStatusChecking,
	})

	log.Println("Seed completed")
}
