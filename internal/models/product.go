package models

// Product 商品表
type Product struct {
	ID            string      `gorm:"primarykey;type:varchar(64)" json:"id" yaml:"id"`
	Name          string      `gorm:"type:varchar(200);not null" json:"name" yaml:"name"`
	Category      string      `gorm:"type:varchar(120);index" json:"category" yaml:"category"`
	Price         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price" yaml:"-"`
	OriginalPrice *Money      `gorm:"type:decimal(20,2)" json:"original_price,omitempty" yaml:"-"`
	Image         string      `gorm:"type:varchar(500)" json:"image" yaml:"image"`
	Rating        float64     `gorm:"default:0" json:"rating" yaml:"rating"`
	Sold          int         `gorm:"default:0" json:"sold" yaml:"sold"`
	Seller        string      `gorm:"type:varchar(120)" json:"seller" yaml:"seller"`
	Location      string      `gorm:"type:varchar(120)" json:"location" yaml:"location"`
	Description   string      `gorm:"type:text" json:"description" yaml:"description"`
	Tags          StringArray `gorm:"type:json" json:"tags" yaml:"tags"`
	SortOrder     int         `gorm:"default:0;index" json:"sort_order" yaml:"sort_order"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsDiscounted 是否带划线价
func (p Product) IsDiscounted() bool {
	return p.OriginalPrice != nil && !p.OriginalPrice.IsZero()
}
