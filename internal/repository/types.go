package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	Category       string
	Search         string
	OnlyDiscounted bool
}

// ExpertListFilter 查询专家列表的过滤条件
type ExpertListFilter struct {
	Search         string
	Specialization string
	OnlyOnline     bool
	Limit          int
}

// ArticleListFilter 查询文章列表的过滤条件
type ArticleListFilter struct {
	Page     int
	PageSize int
	Category string
	Search   string
	OrderBy  string // default / likes
}

// GateAuditLogListFilter 门禁审计日志查询条件
type GateAuditLogListFilter struct {
	Page        int
	PageSize    int
	SessionID   string
	Intent      string
	OnlyDenied  bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
