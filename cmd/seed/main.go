package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aryansawant3579-cell/review-app/config"
	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	"github.com/aryansawant3579-cell/review-app/internal/db"
)

// Imports branches and historical reviews from an XLSX workbook.
// Expected sheets:
//
//	Branches: name | location | branch_code
//	Reviews:  branch_code | source | rating | title | content | category | customer_name | customer_email | date (YYYY-MM-DD)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	branchRepo := repository.NewBranchRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	branchesByCode, created, err := importBranches(f, branchRepo)
	if err != nil {
		log.Fatal("Failed to import branches:", err)
	}
	fmt.Printf("Branches: %d created, %d known\n", created, len(branchesByCode))

	reviews, skipped, err := readReviews(f, branchesByCode)
	if err != nil {
		log.Fatal("Failed to read reviews:", err)
	}

	fmt.Printf("Total reviews to import: %d (skipped %d rows)\n", len(reviews), skipped)
	if len(reviews) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := reviewRepo.BulkCreate(reviews, batchSize); err != nil {
		log.Fatal("Failed to bulk create reviews:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total reviews imported: %d\n", len(reviews))
}

// importBranches upserts every row of the Branches sheet and returns a
// branch_code lookup covering both new and pre-existing branches.
func importBranches(f *excelize.File, branchRepo repository.BranchRepository) (map[string]*model.Branch, int, error) {
	byCode := make(map[string]*model.Branch)
	created := 0

	rows, err := f.GetRows("Branches")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read Branches sheet: %w", err)
	}

	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}

		name := strings.TrimSpace(row[0])
		location := strings.TrimSpace(row[1])
		code := strings.TrimSpace(row[2])
		if name == "" || code == "" {
			continue
		}

		if existing, err := branchRepo.FindByCode(code); err == nil && existing != nil {
			byCode[code] = existing
			continue
		}

		branch := &model.Branch{
			Name:       name,
			Location:   location,
			BranchCode: code,
		}
		if err := branchRepo.Create(branch); err != nil {
			return nil, 0, fmt.Errorf("failed to create branch %q: %w", code, err)
		}
		byCode[code] = branch
		created++
	}

	return byCode, created, nil
}

func readReviews(f *excelize.File, branchesByCode map[string]*model.Branch) ([]model.Review, int, error) {
	rows, err := f.GetRows("Reviews")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read Reviews sheet: %w", err)
	}

	var reviews []model.Review
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			skipped++
			continue
		}

		code := strings.TrimSpace(row[0])
		branch, ok := branchesByCode[code]
		if !ok {
			skipped++
			continue
		}

		rating, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			skipped++
			continue
		}

		content := strings.TrimSpace(row[4])

		category := ""
		if len(row) > 5 {
			category = strings.TrimSpace(row[5])
		}

		sentiment, normCategory, err := service.Classify(content, rating, category)
		if err != nil {
			skipped++
			continue
		}

		review := model.Review{
			BranchID:  branch.ID,
			Source:    model.NormalizeSource(strings.TrimSpace(row[1])),
			Rating:    rating,
			Title:     strings.TrimSpace(row[3]),
			Content:   content,
			Category:  normCategory,
			Sentiment: sentiment,
		}
		if len(row) > 6 {
			review.CustomerName = strings.TrimSpace(row[6])
		}
		if len(row) > 7 {
			review.CustomerEmail = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			if t, err := time.Parse("2006-01-02", strings.TrimSpace(row[8])); err == nil {
				review.CreatedAt = t
			}
		}

		reviews = append(reviews, review)
	}

	return reviews, skipped, nil
}
