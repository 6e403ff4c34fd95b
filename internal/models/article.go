package models

// Article 文章表，正文为 Markdown
type Article struct {
	ID          string `gorm:"primarykey;type:varchar(64)" json:"id" yaml:"id"`
	Title       string `gorm:"type:varchar(300);not null" json:"title" yaml:"title"`
	Excerpt     string `gorm:"type:text" json:"excerpt" yaml:"excerpt"`
	Content     string `gorm:"type:text" json:"content" yaml:"content"`
	Category    string `gorm:"type:varchar(120);index" json:"category" yaml:"category"`
	AuthorName  string `gorm:"type:varchar(120)" json:"author_name" yaml:"author_name"`
	AuthorImage string `gorm:"type:varchar(500)" json:"author_image" yaml:"author_image"`
	Image       string `gorm:"type:varchar(500)" json:"image" yaml:"image"`
	Likes       int    `gorm:"default:0;index" json:"likes" yaml:"likes"`
	ReadTime    string `gorm:"type:varchar(40)" json:"read_time" yaml:"read_time"`
	PublishedOn string `gorm:"type:varchar(40)" json:"published_on" yaml:"published_on"`
	SortOrder   int    `gorm:"default:0;index" json:"sort_order" yaml:"sort_order"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
