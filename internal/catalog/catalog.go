package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/halotrubus/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var embeddedDataset []byte

// Dataset 示例目录数据
type Dataset struct {
	Categories []models.Category
	Products   []models.Product
	Experts    []models.Expert
	Articles   []models.Article
}

type productEntry struct {
	models.Product `yaml:",inline"`
	Price          int64 `yaml:"price"`
	OriginalPrice  int64 `yaml:"original_price"`
}

type expertEntry struct {
	models.Expert `yaml:",inline"`
	Price         int64 `yaml:"price"`
}

type datasetFile struct {
	Categories []models.Category `yaml:"categories"`
	Products   []productEntry    `yaml:"products"`
	Experts    []expertEntry     `yaml:"experts"`
	Articles   []models.Article  `yaml:"articles"`
}

// Default 返回内置示例目录
func Default() (*Dataset, error) {
	return Parse(embeddedDataset)
}

// Parse 解析 YAML 目录数据
func Parse(raw []byte) (*Dataset, error) {
	var file datasetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog dataset: %w", err)
	}
	ds := &Dataset{
		Categories: file.Categories,
		Articles:   file.Articles,
	}
	for _, entry := range file.Products {
		product := entry.Product
		product.Price = models.NewMoney(entry.Price)
		if entry.OriginalPrice > 0 {
			original := models.NewMoney(entry.OriginalPrice)
			product.OriginalPrice = &original
		}
		ds.Products = append(ds.Products, product)
	}
	for _, entry := range file.Experts {
		expert := entry.Expert
		expert.Price = models.NewMoney(entry.Price)
		ds.Experts = append(ds.Experts, expert)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *Dataset) validate() error {
	seen := map[string]struct{}{}
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("catalog %s with empty id", kind)
		}
		key := kind + ":" + id
		if _, ok := seen[key]; ok {
			return fmt.Errorf("catalog %s id %s duplicated", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, c := range d.Categories {
		if err := check("category", c.ID); err != nil {
			return err
		}
	}
	for _, p := range d.Products {
		if err := check("product", p.ID); err != nil {
			return err
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("catalog product %s has negative price", p.ID)
		}
	}
	for _, e := range d.Experts {
		if err := check("expert", e.ID); err != nil {
			return err
		}
	}
	for _, a := range d.Articles {
		if err := check("article", a.ID); err != nil {
			return err
		}
	}
	return nil
}

// Summary 各类记录数量
func (d *Dataset) Summary() map[string]int {
	return map[string]int{
		"categories": len(d.Categories),
		"products":   len(d.Products),
		"experts":    len(d.Experts),
		"articles":   len(d.Articles),
	}
}

// SummaryKeys 按字母序返回 Summary 的键
func SummaryKeys(summary map[string]int) []string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
