package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCatalogRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate catalog failed: %v", err)
	}
	ds, err := catalog.Default()
	if err != nil {
		t.Fatalf("load dataset failed: %v", err)
	}
	if err := catalog.Seed(db, ds); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return db
}

func TestProductRepositoryFilters(t *testing.T) {
	repo := NewProductRepository(setupCatalogRepositoryTest(t))

	all, total, err := repo.List(ProductListFilter{Category: "Semua"})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if int(total) != len(all) || total == 0 {
		t.Fatalf("unexpected total %d for %d rows", total, len(all))
	}

	hydro, _, err := repo.List(ProductListFilter{Category: "Hidroponik"})
	if err != nil {
		t.Fatalf("list category failed: %v", err)
	}
	for _, p := range hydro {
		if p.Category != "Hidroponik" {
			t.Fatalf("category filter leaked %s", p.Category)
		}
	}

	found, _, err := repo.List(ProductListFilter{Search: "CABAI"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != "p-001" {
		t.Fatalf("case-insensitive search should find p-001, got %v", found)
	}

	featured, err := repo.ListFeatured(6)
	if err != nil {
		t.Fatalf("featured failed: %v", err)
	}
	for _, p := range featured {
		if !p.IsDiscounted() {
			t.Fatalf("featured product %s has no original price", p.ID)
		}
	}

	missing, err := repo.GetByID("nope")
	if err != nil || missing != nil {
		t.Fatalf("missing product should be nil, got %v %v", missing, err)
	}
}

func TestExpertRepositoryOnlineFirst(t *testing.T) {
	repo := NewExpertRepository(setupCatalogRepositoryTest(t))

	experts, err := repo.List(ExpertListFilter{Specialization: "Semua"})
	if err != nil {
		t.Fatalf("list experts failed: %v", err)
	}
	seenOffline := false
	for _, e := range experts {
		if !e.IsOnline {
			seenOffline = true
			continue
		}
		if seenOffline {
			t.Fatalf("online expert %s listed after offline one", e.ID)
		}
	}

	pangan, err := repo.List(ExpertListFilter{Specialization: "Tanaman Pangan"})
	if err != nil {
		t.Fatalf("list by specialization failed: %v", err)
	}
	if len(pangan) != 2 || pangan[0].ID != "e-001" {
		t.Fatalf("unexpected specialization result: %v", pangan)
	}

	online, err := repo.List(ExpertListFilter{OnlyOnline: true, Limit: 2})
	if err != nil {
		t.Fatalf("list online failed: %v", err)
	}
	if len(online) != 2 {
		t.Fatalf("limit not applied: %d", len(online))
	}
}

func TestArticleRepositoryTrendingAndSearch(t *testing.T) {
	repo := NewArticleRepository(setupCatalogRepositoryTest(t))

	trending, err := repo.ListTrending(3)
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(trending) != 3 {
		t.Fatalf("trending want 3 got %d", len(trending))
	}
	for i := 1; i < len(trending); i++ {
		if trending[i].Likes > trending[i-1].Likes {
			t.Fatalf("trending not sorted by likes")
		}
	}

	featured, err := repo.GetFeatured()
	if err != nil || featured == nil || featured.ID != "a-001" {
		t.Fatalf("featured should be first article, got %v %v", featured, err)
	}

	byAuthor, _, err := repo.List(ArticleListFilter{Search: "rina"})
	if err != nil {
		t.Fatalf("search by author failed: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].ID != "a-002" {
		t.Fatalf("author search should match a-002, got %v", byAuthor)
	}
}

func TestCategoryRepositoryScopes(t *testing.T) {
	repo := NewCategoryRepository(setupCatalogRepositoryTest(t))
	items, err := repo.ListByScope(models.CategoryScopeExpert)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(items) == 0 || items[0].Name != "Semua" {
		t.Fatalf("expert categories should start with Semua, got %v", items)
	}
}
