package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/items-api/internal/config"
	"github.com/shinyyama/items-api/internal/db"
	"github.com/shinyyama/items-api/internal/model"
	"github.com/shinyyama/items-api/internal/repository"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	n, err := seed(ctx, gdb, buildSeedItems(), force)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}
	log.Printf("seeded %d items", n)
	return nil
}

// seed replaces the table contents with items in one transaction. It returns 0
// without writing when the table already has rows and force is false.
func seed(ctx context.Context, gdb *gorm.DB, items []model.Item, force bool) (int, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Item{}).Count(&cnt).Error; err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if cnt > 0 && !force {
		return 0, nil
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Item{}).Error; err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		repo := repository.NewItemRepository(tx)
		for i := range items {
			item := items[i]
			if err := repo.Create(ctx, &item); err != nil {
				return fmt.Errorf("insert item %q: %w", item.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func buildSeedItems() []model.Item {
	type line struct {
		Price float64
		Names []string
	}
	lines := []line{
		{Price: 9.99, Names: []string{"Widget", "Sprocket", "Gear"}},
		{Price: 24.5, Names: []string{"Gadget", "Gizmo"}},
		{Price: 3.25, Names: []string{"Bolt", "Washer", "Nut", "Rivet"}},
	}

	var items []model.Item
	for _, l := range lines {
		for i, name := range l.Names {
			items = append(items, model.Item{
				Name:        name,
				Description: fmt.Sprintf("A %s", strings.ToLower(name)),
				Price:       l.Price,
				Quantity:    (i + 1) * 5,
			})
		}
	}
	return items
}
