package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkpress/internal/config"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
)

// Seed tool for local development data.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	fmt.Println("seeding test data...")

	users := createTestUsers()
	categories := createTestCategories()
	createTestPosts(users, categories)

	fmt.Println("done")
	fmt.Println("users: alice@example.com / secret123, bob@example.com / secret123")
}

func createTestUsers() []db.User {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("users already exist, skipping")
		var users []db.User
		db.DB.Find(&users)
		return users
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := []db.User{
		{Email: "alice@example.com", Username: "alice", Password: string(hashed), FirstName: "Alice", LastName: "Doe"},
		{Email: "bob@example.com", Username: "bob", Password: string(hashed), FirstName: "Bob", LastName: "Smith"},
	}
	if err := db.DB.Create(&users).Error; err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	return users
}

func createTestCategories() []db.Category {
	var count int64
	db.DB.Model(&db.Category{}).Count(&count)
	if count > 0 {
		fmt.Println("categories already exist, skipping")
		var categories []db.Category
		db.DB.Find(&categories)
		return categories
	}

	names := []string{"Tech", "Life", "Travel"}
	categories := make([]db.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, db.Category{Name: name, Slug: service.Slugify(name)})
	}
	if err := db.DB.Create(&categories).Error; err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}
	return categories
}

func createTestPosts(users []db.User, categories []db.Category) {
	var count int64
	db.DB.Model(&db.BlogPost{}).Count(&count)
	if count > 0 || len(users) == 0 || len(categories) == 0 {
		fmt.Println("posts already exist, skipping")
		return
	}

	titles := []string{"Hello World", "Notes on Go", "A Week in Kyoto", "Draft Thoughts"}
	for i, title := range titles {
		post := db.BlogPost{
			Title:       title,
			Slug:        service.Slugify(title),
			Description: fmt.Sprintf("Description for %s", title),
			Content:     fmt.Sprintf("# %s\n\nSample content.", title),
			UserID:      users[i%len(users)].ID,
			CategoryID:  categories[i%len(categories)].ID,
			IsPublished: i < 3,
		}
		if err := db.DB.Create(&post).Error; err != nil {
			log.Fatalf("failed to seed post %q: %v", title, err)
		}

		comment := db.Comment{
			Content:    "First!",
			UserID:     users[(i+1)%len(users)].ID,
			BlogPostID: post.ID,
		}
		if err := db.DB.Create(&comment).Error; err != nil {
			log.Fatalf("failed to seed comment: %v", err)
		}
		reply := db.Comment{
			Content:    "Thanks for reading",
			UserID:     post.UserID,
			BlogPostID: post.ID,
			ParentID:   &comment.ID,
		}
		if err := db.DB.Create(&reply).Error; err != nil {
			log.Fatalf("failed to seed reply: %v", err)
		}

		like := db.Like{UserID: users[(i+1)%len(users)].ID, BlogPostID: post.ID}
		if err := db.DB.Create(&like).Error; err != nil {
			log.Fatalf("failed to seed like: %v", err)
		}
	}
}
