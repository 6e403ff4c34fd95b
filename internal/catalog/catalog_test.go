package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/halotrubus/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("load default dataset failed: %v", err)
	}
	if len(ds.Products) == 0 || len(ds.Experts) == 0 || len(ds.Articles) == 0 {
		t.Fatalf("dataset should not be empty: %v", ds.Summary())
	}
	var discounted int
	for _, p := range ds.Products {
		if p.IsDiscounted() {
			discounted++
			if !p.OriginalPrice.GreaterThan(p.Price.Decimal) {
				t.Fatalf("product %s original price should exceed price", p.ID)
			}
		}
	}
	if discounted == 0 {
		t.Fatalf("dataset should contain discounted products")
	}
	if got := ds.Experts[0].Price.String(); got != "50000" {
		t.Fatalf("first expert price want 50000 got %s", got)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`
products:
  - { id: p-1, name: A, price: 1000 }
  - { id: p-1, name: B, price: 2000 }
`)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("duplicated product id should fail")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	ds, err := Default()
	if err != nil {
		t.Fatalf("load dataset failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Seed(db, ds); err != nil {
			t.Fatalf("seed round %d failed: %v", i, err)
		}
	}
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if int(count) != len(ds.Products) {
		t.Fatalf("product count want %d got %d", len(ds.Products), count)
	}
	var stored models.Product
	if err := db.First(&stored, "id = ?", ds.Products[0].ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if !stored.Price.Equal(ds.Products[0].Price.Decimal) {
		t.Fatalf("price roundtrip mismatch: %s vs %s", stored.Price, ds.Products[0].Price)
	}
}

func TestRendererSanitizes(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render("## Judul\n\n**tebal** <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "<strong>tebal</strong>") {
		t.Fatalf("unexpected html: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script should be stripped: %s", html)
	}
}
