// Package seed loads the demo catalog and admin account on a fresh store.
package seed

import (
	"context"
	"fmt"

	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Run is idempotent: it does nothing once any category exists.
func Run(ctx context.Context, store repository.Store) error {
	existing, err := store.Categories().All(ctx)
	if err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	return store.Transact(ctx, func(tx repository.Store) error {
		categories := []model.Category{
			{Name: "Fiction", Icon: `<i class="ri-book-mark-line"></i>`},
			{Name: "Non-Fiction", Icon: `<i class="ri-article-line"></i>`},
			{Name: "Sci-Fi", Icon: `<i class="ri-rocket-line"></i>`},
			{Name: "Mystery", Icon: `<i class="ri-spy-line"></i>`},
			{Name: "Biography", Icon: `<i class="ri-user-star-line"></i>`},
			{Name: "Children", Icon: `<i class="ri-emotion-happy-line"></i>`},
		}
		categoryIDs := make([]int, len(categories))
		for i := range categories {
			if err := tx.Categories().Create(ctx, &categories[i]); err != nil {
				return fmt.Errorf("seed category %q: %w", categories[i].Name, err)
			}
			categoryIDs[i] = categories[i].ID
		}

		books := []model.Book{
			{
				Title:           "The Dragon's Revenge",
				Author:          "Emily Winters",
				Description:     "A thrilling fantasy adventure about a kingdom under siege and the unlikely hero who must save it.",
				Price:           24.99,
				CoverImage:      "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300&h=400",
				Rating:          4.7,
				ReviewCount:     124,
				Pages:           342,
				Publisher:       "Mystic Press",
				PublicationDate: "June 15, 2023",
				Language:        "English",
				ISBN:            "978-1234567890",
				CategoryID:      categoryIDs[0],
				InStock:         true,
			},
			{
				Title:           "Mindful Living",
				Author:          "Dr. Sarah Johnson",
				Description:     "Discover the secrets to a more balanced and fulfilling life through mindfulness practices.",
				Price:           18.50,
				CoverImage:      "https://images.unsplash.com/photo-1589998059171-988d887df646?w=300&h=400",
				Rating:          4.9,
				ReviewCount:     89,
				Pages:           276,
				Publisher:       "Wellness Books",
				PublicationDate: "March 22, 2023",
				Language:        "English",
				ISBN:            "978-9876543210",
				CategoryID:      categoryIDs[1],
				InStock:         true,
			},
			{
				Title:           "The Silent Witness",
				Author:          "James Patterson",
				Description:     "A gripping thriller about a detective tracking a serial killer who leaves no evidence behind.",
				Price:           21.75,
				CoverImage:      "https://images.unsplash.com/photo-1541963463532-d68292c34b19?w=300&h=400",
				Rating:          4.6,
				ReviewCount:     156,
				Pages:           320,
				Publisher:       "Mystery House",
				PublicationDate: "October 5, 2022",
				Language:        "English",
				ISBN:            "978-5678901234",
				CategoryID:      categoryIDs[3],
				InStock:         true,
			},
			{
				Title:           "Global Kitchen",
				Author:          "Chef Marco Lee",
				Description:     "100 delicious recipes from around the world, with simple instructions for cooks of all levels.",
				Price:           29.99,
				CoverImage:      "https://images.unsplash.com/photo-1476275466078-4007374efbbe?w=300&h=400",
				Rating:          4.8,
				ReviewCount:     72,
				Pages:           248,
				Publisher:       "Culinary Arts",
				PublicationDate: "May 12, 2023",
				Language:        "English",
				ISBN:            "978-2345678901",
				CategoryID:      categoryIDs[1],
				InStock:         true,
			},
			{
				Title:           "Cosmos Explained",
				Author:          "Dr. Neil Adams",
				Description:     "An accessible journey through the mysteries of our universe, from quantum physics to black holes.",
				Price:           26.50,
				CoverImage:      "https://images.unsplash.com/photo-1532012197267-da84d127e765?w=300&h=400",
				Rating:          4.5,
				ReviewCount:     63,
				Pages:           412,
				Publisher:       "Science Today",
				PublicationDate: "January 18, 2023",
				Language:        "English",
				ISBN:            "978-3456789012",
				CategoryID:      categoryIDs[1],
				InStock:         true,
			},
			{
				Title:           "The Queen's Gambit",
				Author:          "Elizabeth Harris",
				Description:     "A captivating tale of political intrigue set in Tudor England during the reign of Queen Elizabeth I.",
				Price:           22.95,
				CoverImage:      "https://cdn.pixabay.com/photo/2015/11/19/21/10/glasses-1052010_1280.jpg",
				Rating:          4.7,
				ReviewCount:     108,
				Pages:           368,
				Publisher:       "Historical Press",
				PublicationDate: "August 30, 2022",
				Language:        "English",
				ISBN:            "978-4567890123",
				CategoryID:      categoryIDs[0],
				InStock:         true,
			},
			{
				Title:           "Start-Up Mindset",
				Author:          "Mark Robertson",
				Description:     "Essential strategies for entrepreneurs looking to build successful businesses in today's digital economy.",
				Price:           19.99,
				CoverImage:      "https://images.unsplash.com/photo-1550399105-c4db5fb85c18?w=300&h=400",
				Rating:          4.6,
				ReviewCount:     94,
				Pages:           286,
				Publisher:       "Business Edge",
				PublicationDate: "February 4, 2023",
				Language:        "English",
				ISBN:            "978-5678901234",
				CategoryID:      categoryIDs[1],
				InStock:         true,
			},
			{
				Title:           "The Magical Forest",
				Author:          "Lisa Wilson",
				Description:     "A beautifully illustrated children's book about friendship, courage, and the wonders of nature.",
				Price:           16.99,
				CoverImage:      "https://images.unsplash.com/photo-1629992101753-56d196c8aabb?w=300&h=400",
				Rating:          4.9,
				ReviewCount:     127,
				Pages:           48,
				Publisher:       "Kids Wonder",
				PublicationDate: "April 2, 2023",
				Language:        "English",
				ISBN:            "978-6789012345",
				CategoryID:      categoryIDs[5],
				InStock:         true,
			},
		}
		for i := range books {
			if err := tx.Books().Create(ctx, &books[i]); err != nil {
				return fmt.Errorf("seed book %q: %w", books[i].Title, err)
			}
			if err := tx.Categories().IncrementBookCount(ctx, books[i].CategoryID); err != nil {
				return err
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return err
		}
		admin := &model.User{
			Username:  "admin",
			Password:  string(hash),
			FirstName: "Admin",
			LastName:  "User",
			Email:     "admin@bookhaven.com",
			IsAdmin:   true,
		}
		if err := tx.Users().Create(ctx, admin); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		return nil
	})
}
