package public

import (
	"strings"
	"time"

	"github.com/halotrubus/internal/http/handlers/shared"
	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/repository"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Category   string `form:"category"`
	Search     string `form:"search"`
	Discounted bool   `form:"discounted"`
}

// ExpertListQuery 专家列表查询参数
type ExpertListQuery struct {
	Search         string `form:"search"`
	Specialization string `form:"specialization"`
	Online         bool   `form:"online"`
	Limit          int    `form:"limit"`
}

// ArticleListQuery 文章列表查询参数
type ArticleListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
}

// ExpertDetailResponse 专家详情与咨询报价
type ExpertDetailResponse struct {
	Expert models.Expert   `json:"expert"`
	Quotes []session.Quote `json:"quotes"`
}

// BookingOptionsResponse 预约可选项
type BookingOptionsResponse struct {
	PricingTier string                   `json:"pricing_tier"`
	Kinds       []string                 `json:"kinds"`
	Schedule    session.ScheduleOptions `json:"schedule"`
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// GetHomeFeed 首页聚合
func (h *Handler) GetHomeFeed(c *gin.Context) {
	feed, err := h.CatalogService.HomeFeed(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, feed)
}

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	var query ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	result, err := h.CatalogService.ListProducts(c.Request.Context(), repository.ProductListFilter{
		Page:           page,
		PageSize:       pageSize,
		Category:       query.Category,
		Search:         query.Search,
		OnlyDiscounted: query.Discounted,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, result.Items, buildPagination(page, pageSize, result.Total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProduct(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, product)
}

// ListExperts 专家列表，在线专家优先
func (h *Handler) ListExperts(c *gin.Context) {
	var query ExpertListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	experts, err := h.CatalogService.ListExperts(c.Request.Context(), repository.ExpertListFilter{
		Search:         query.Search,
		Specialization: query.Specialization,
		OnlyOnline:     query.Online,
		Limit:          query.Limit,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, experts)
}

// GetExpert 专家详情及各咨询方式的报价
func (h *Handler) GetExpert(c *gin.Context) {
	expert, err := h.CatalogService.GetExpert(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, ExpertDetailResponse{Expert: *expert, Quotes: h.Pricing.Quotes(expert.Price)})
}

// ListArticles 文章列表
func (h *Handler) ListArticles(c *gin.Context) {
	var query ArticleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	result, err := h.CatalogService.ListArticles(c.Request.Context(), repository.ArticleListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: query.Category,
		Search:   query.Search,
		OrderBy:  query.OrderBy,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, result.Items, buildPagination(page, pageSize, result.Total))
}

// GetArticleOverview 精选与热门文章
func (h *Handler) GetArticleOverview(c *gin.Context) {
	overview, err := h.CatalogService.ArticleOverview(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, overview)
}

// GetArticle 文章详情（正文为净化后的 HTML）
func (h *Handler) GetArticle(c *gin.Context) {
	detail, err := h.CatalogService.GetArticleDetail(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, detail)
}

// ListCategories 分类列表，scope 默认为商品
func (h *Handler) ListCategories(c *gin.Context) {
	scope := strings.TrimSpace(c.DefaultQuery("scope", models.CategoryScopeProduct))
	switch scope {
	case models.CategoryScopeProduct, models.CategoryScopeArticle, models.CategoryScopeExpert:
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	categories, err := h.CatalogService.Categories(c.Request.Context(), scope)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, categories)
}

// GetBookingOptions 预约的定价档位与可选日期时段
func (h *Handler) GetBookingOptions(c *gin.Context) {
	offset := h.Config.Booking.UTCOffsetHours
	now := time.Now().In(time.FixedZone("", offset*60*60))
	response.Success(c, BookingOptionsResponse{
		PricingTier: h.Pricing.Tier(),
		Kinds:       h.Pricing.Kinds(),
		Schedule:    session.BuildSchedule(now, h.Config.Booking.ScheduleDays, h.Config.Booking.TimeSlots),
	})
}

// ListGatePolicies 门禁策略（只读），说明各角色可执行的受保护操作
func (h *Handler) ListGatePolicies(c *gin.Context) {
	roles, err := h.AuthzService.ListRolePolicies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, roles)
}
