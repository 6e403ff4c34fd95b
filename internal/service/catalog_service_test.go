package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) *CatalogService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	ds, err := catalog.Default()
	if err != nil {
		t.Fatalf("load dataset failed: %v", err)
	}
	if err := catalog.Seed(db, ds); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return NewCatalogService(
		repository.NewProductRepository(db),
		repository.NewExpertRepository(db),
		repository.NewArticleRepository(db),
		repository.NewCategoryRepository(db),
		0,
	)
}

func TestCatalogHomeFeed(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	feed, err := svc.HomeFeed(context.Background())
	if err != nil {
		t.Fatalf("home feed failed: %v", err)
	}
	if len(feed.Categories) != 6 {
		t.Fatalf("want 6 product categories got %d", len(feed.Categories))
	}
	if len(feed.FeaturedProducts) != 4 {
		t.Fatalf("want 4 discounted products got %d", len(feed.FeaturedProducts))
	}
	for _, p := range feed.FeaturedProducts {
		if !p.IsDiscounted() {
			t.Fatalf("featured product %s has no original price", p.ID)
		}
	}
	if len(feed.OnlineExperts) != 4 {
		t.Fatalf("want 4 online experts got %d", len(feed.OnlineExperts))
	}
	for _, e := range feed.OnlineExperts {
		if !e.IsOnline {
			t.Fatalf("offline expert %s in home feed", e.ID)
		}
	}
	if len(feed.LatestArticles) != 4 || feed.LatestArticles[0].ID != "a-001" {
		t.Fatalf("unexpected latest articles: %d", len(feed.LatestArticles))
	}
}

func TestCatalogExpertsOnlineFirst(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	experts, err := svc.ListExperts(context.Background(), repository.ExpertListFilter{})
	if err != nil {
		t.Fatalf("list experts failed: %v", err)
	}
	want := []string{"e-001", "e-003", "e-005", "e-006", "e-002", "e-004"}
	if len(experts) != len(want) {
		t.Fatalf("want %d experts got %d", len(want), len(experts))
	}
	for i, id := range want {
		if experts[i].ID != id {
			t.Fatalf("position %d want %s got %s", i, id, experts[i].ID)
		}
	}

	filtered, err := svc.ListExperts(context.Background(), repository.ExpertListFilter{Specialization: "Tanaman Pangan"})
	if err != nil {
		t.Fatalf("filter experts failed: %v", err)
	}
	for _, e := range filtered {
		if e.Specialization != "Tanaman Pangan" {
			t.Fatalf("specialization filter leaked %s", e.Specialization)
		}
	}
}

func TestCatalogArticleOverviewAndDetail(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	ctx := context.Background()

	overview, err := svc.ArticleOverview(ctx)
	if err != nil {
		t.Fatalf("article overview failed: %v", err)
	}
	if overview.Featured == nil || overview.Featured.ID != "a-001" {
		t.Fatalf("featured article should be the first one")
	}
	trending := make([]string, 0, len(overview.Trending))
	for _, a := range overview.Trending {
		trending = append(trending, a.ID)
	}
	if strings.Join(trending, ",") != "a-002,a-005,a-001" {
		t.Fatalf("unexpected trending order: %v", trending)
	}

	detail, err := svc.GetArticleDetail(ctx, "a-001")
	if err != nil {
		t.Fatalf("article detail failed: %v", err)
	}
	if detail.HTML == "" || strings.Contains(detail.HTML, "<script") {
		t.Fatalf("unexpected article html: %q", detail.HTML)
	}
}

func TestCatalogNotFound(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	ctx := context.Background()
	if _, err := svc.GetProduct(ctx, "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if _, err := svc.GetExpert(ctx, "missing"); !errors.Is(err, ErrExpertNotFound) {
		t.Fatalf("want ErrExpertNotFound got %v", err)
	}
	if _, err := svc.GetArticleDetail(ctx, "missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("want ErrArticleNotFound got %v", err)
	}
}
