package service

import (
	"context"
	"strconv"
	"time"

	"github.com/halotrubus/internal/cache"
	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/repository"
)

const (
	homeFeaturedProductLimit = 6
	homeOnlineExpertLimit    = 5
	homeLatestArticleLimit   = 4
	trendingArticleLimit     = 3
)

// CatalogService 示例目录查询服务
type CatalogService struct {
	productRepo  repository.ProductRepository
	expertRepo   repository.ExpertRepository
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	renderer     *catalog.Renderer
	cacheTTL     time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	productRepo repository.ProductRepository,
	expertRepo repository.ExpertRepository,
	articleRepo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
	cacheTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		expertRepo:   expertRepo,
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		renderer:     catalog.NewRenderer(),
		cacheTTL:     cacheTTL,
	}
}

// ProductPage 商品分页结果
type ProductPage struct {
	Items    []models.Product `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ArticlePage 文章分页结果
type ArticlePage struct {
	Items    []models.Article `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ArticleDetail 文章详情，正文已渲染为 HTML
type ArticleDetail struct {
	Article models.Article `json:"article"`
	HTML    string         `json:"content_html"`
}

// HomeFeed 首页聚合
type HomeFeed struct {
	Categories       []models.Category `json:"categories"`
	FeaturedProducts []models.Product  `json:"featured_products"`
	OnlineExperts    []models.Expert   `json:"online_experts"`
	LatestArticles   []models.Article  `json:"latest_articles"`
}

// ArticleOverview 文章页聚合
type ArticleOverview struct {
	Categories []models.Category `json:"categories"`
	Featured   *models.Article   `json:"featured,omitempty"`
	Trending   []models.Article  `json:"trending"`
}

// 先读缓存，未命中时查询并回写；缓存故障只记录日志
func cached[T any](ctx context.Context, ttl time.Duration, kind string, parts []string, load func() (T, error)) (T, error) {
	key := cache.CatalogKey(ctx, kind, parts...)
	var out T
	hit, err := cache.GetCatalog(ctx, key, &out)
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "key", key, "error", err)
	}
	if hit {
		return out, nil
	}
	out, err = load()
	if err != nil {
		return out, err
	}
	if err := cache.SetCatalog(ctx, key, out, ttl); err != nil {
		logger.Warnw("catalog_cache_set_failed", "key", key, "error", err)
	}
	return out, nil
}

// ListProducts 商品列表
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductListFilter) (*ProductPage, error) {
	parts := []string{
		filter.Category,
		filter.Search,
		strconv.FormatBool(filter.OnlyDiscounted),
		strconv.Itoa(filter.Page),
		strconv.Itoa(filter.PageSize),
	}
	return cached(ctx, s.cacheTTL, "products", parts, func() (*ProductPage, error) {
		items, total, err := s.productRepo.List(filter)
		if err != nil {
			return nil, err
		}
		return &ProductPage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
	})
}

// GetProduct 商品详情
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListExperts 专家列表，在线优先
func (s *CatalogService) ListExperts(ctx context.Context, filter repository.ExpertListFilter) ([]models.Expert, error) {
	parts := []string{
		filter.Search,
		filter.Specialization,
		strconv.FormatBool(filter.OnlyOnline),
		strconv.Itoa(filter.Limit),
	}
	return cached(ctx, s.cacheTTL, "experts", parts, func() ([]models.Expert, error) {
		return s.expertRepo.List(filter)
	})
}

// GetExpert 专家详情
func (s *CatalogService) GetExpert(ctx context.Context, id string) (*models.Expert, error) {
	expert, err := s.expertRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expert == nil {
		return nil, ErrExpertNotFound
	}
	return expert, nil
}

// ListArticles 文章列表
func (s *CatalogService) ListArticles(ctx context.Context, filter repository.ArticleListFilter) (*ArticlePage, error) {
	parts := []string{
		filter.Category,
		filter.Search,
		filter.OrderBy,
		strconv.Itoa(filter.Page),
		strconv.Itoa(filter.PageSize),
	}
	return cached(ctx, s.cacheTTL, "articles", parts, func() (*ArticlePage, error) {
		items, total, err := s.articleRepo.List(filter)
		if err != nil {
			return nil, err
		}
		return &ArticlePage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
	})
}

// GetArticle 文章记录
func (s *CatalogService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// GetArticleDetail 文章详情，markdown 正文渲染为安全 HTML
func (s *CatalogService) GetArticleDetail(ctx context.Context, id string) (*ArticleDetail, error) {
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.Render(article.Content)
	if err != nil {
		return nil, err
	}
	return &ArticleDetail{Article: *article, HTML: html}, nil
}

// Categories 按作用域列出分类
func (s *CatalogService) Categories(ctx context.Context, scope string) ([]models.Category, error) {
	return cached(ctx, s.cacheTTL, "categories", []string{scope}, func() ([]models.Category, error) {
		return s.categoryRepo.ListByScope(scope)
	})
}

// HomeFeed 首页：商品分类、精选商品、在线专家与最新文章
func (s *CatalogService) HomeFeed(ctx context.Context) (*HomeFeed, error) {
	return cached(ctx, s.cacheTTL, "home", nil, func() (*HomeFeed, error) {
		categories, err := s.categoryRepo.ListByScope(models.CategoryScopeProduct)
		if err != nil {
			return nil, err
		}
		featured, err := s.productRepo.ListFeatured(homeFeaturedProductLimit)
		if err != nil {
			return nil, err
		}
		experts, err := s.expertRepo.List(repository.ExpertListFilter{OnlyOnline: true, Limit: homeOnlineExpertLimit})
		if err != nil {
			return nil, err
		}
		articles, _, err := s.articleRepo.List(repository.ArticleListFilter{Page: 1, PageSize: homeLatestArticleLimit})
		if err != nil {
			return nil, err
		}
		return &HomeFeed{
			Categories:       categories,
			FeaturedProducts: featured,
			OnlineExperts:    experts,
			LatestArticles:   articles,
		}, nil
	})
}

// ArticleOverview 文章页：精选文章与热门文章
func (s *CatalogService) ArticleOverview(ctx context.Context) (*ArticleOverview, error) {
	return cached(ctx, s.cacheTTL, "article_overview", nil, func() (*ArticleOverview, error) {
		categories, err := s.categoryRepo.ListByScope(models.CategoryScopeArticle)
		if err != nil {
			return nil, err
		}
		featured, err := s.articleRepo.GetFeatured()
		if err != nil {
			return nil, err
		}
		trending, err := s.articleRepo.ListTrending(trendingArticleLimit)
		if err != nil {
			return nil, err
		}
		return &ArticleOverview{Categories: categories, Featured: featured, Trending: trending}, nil
	})
}

// Invalidate 目录数据变更后使缓存失效
func (s *CatalogService) Invalidate(ctx context.Context) error {
	return cache.InvalidateCatalog(ctx)
}
