package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.AuthUser{}, &models.Profile{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")
	fmt.Println()

	fmt.Print("Full name: ")
	fullName, _ := reader.ReadString('\n')
	fullName = strings.TrimSpace(fullName)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(strings.ToLower(email))

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println()

	// Validate inputs
	if fullName == "" || email == "" || password == "" {
		log.Fatal("Full name, email, and password are required")
	}

	if err := services.ValidatePassword(password); err != nil {
		log.Fatalf("Password rejected: %v", err)
	}

	// Check if an identity already exists
	var existing models.AuthUser
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("Account with email %s already exists", email)
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.AuthUser{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create admin identity: %v", err)
	}

	// Profile row shares the identity id
	profile := &models.Profile{
		ID:       user.ID,
		FullName: fullName,
		Email:    email,
		Role:     models.RoleAdmin,
	}
	if err := db.DB.Create(profile).Error; err != nil {
		log.Fatalf("Failed to create admin profile: %v", err)
	}

	fmt.Println()
	fmt.Println("Admin account created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.FullName)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Println()
	fmt.Printf("Sign in at %s/login\n", cfg.AppURL)
}
