package catalog

import (
	"fmt"

	"github.com/halotrubus/internal/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed 将目录数据写入数据库，已存在的记录按主键覆盖
func Seed(db *gorm.DB, ds *Dataset) error {
	if db == nil || ds == nil {
		return fmt.Errorf("seed catalog: nil db or dataset")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if len(ds.Categories) > 0 {
			if err := upsert.Create(&ds.Categories).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
		if len(ds.Products) > 0 {
			if err := upsert.Create(&ds.Products).Error; err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}
		if len(ds.Experts) > 0 {
			if err := upsert.Create(&ds.Experts).Error; err != nil {
				return fmt.Errorf("seed experts: %w", err)
			}
		}
		if len(ds.Articles) > 0 {
			if err := upsert.Create(&ds.Articles).Error; err != nil {
				return fmt.Errorf("seed articles: %w", err)
			}
		}
		logger.Infow("catalog_seeded",
			"categories", len(ds.Categories),
			"products", len(ds.Products),
			"experts", len(ds.Experts),
			"articles", len(ds.Articles),
		)
		return nil
	})
}
