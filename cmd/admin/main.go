// Command admin manages the stored admin credential: it creates the admin
// user, or resets the password when the email already exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/config"
)

func main() {
	_ = godotenv.Load()

	var (
		email    = flag.String("email", "", "admin email address")
		name     = flag.String("name", "Admin", "display name")
		password = flag.String("password", "", "password; reads ADMIN_PASSWORD when empty")
	)
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}
	pass := *password
	if pass == "" {
		pass = os.Getenv("ADMIN_PASSWORD")
	}
	if pass == "" {
		log.Fatal("password is required (-password flag or ADMIN_PASSWORD)")
	}
	if len(pass) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	repo, err := serverConfig.BuildRepository()
	if err != nil {
		log.Fatalf("Failed to build repository: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	addr := strings.ToLower(strings.TrimSpace(*email))
	existing, err := repo.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		existing.PasswordHash = string(hash)
		if err := repo.UpdateUser(ctx, existing); err != nil {
			log.Fatalf("Failed to update user: %v", err)
		}
		fmt.Printf("Password updated for %s\n", addr)
	case errors.Is(err, portfolio.ErrNotFound):
		user := &portfolio.User{
			ID:           uuid.New(),
			Email:        addr,
			Name:         *name,
			PasswordHash: string(hash),
			IsAdmin:      true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		fmt.Printf("Admin user created: %s\n", addr)
	default:
		log.Fatalf("Failed to look up user: %v", err)
	}
}
