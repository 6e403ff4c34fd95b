package models

// Expert 咨询专家表
type Expert struct {
	ID             string  `gorm:"primarykey;type:varchar(64)" json:"id" yaml:"id"`
	Name           string  `gorm:"type:varchar(120);not null" json:"name" yaml:"name"`
	Specialization string  `gorm:"type:varchar(120);index" json:"specialization" yaml:"specialization"`
	Price          Money   `gorm:"type:decimal(20,2);not null;default:0" json:"price" yaml:"-"`
	IsOnline       bool    `gorm:"default:false;index" json:"is_online" yaml:"is_online"`
	Rating         float64 `gorm:"default:0" json:"rating" yaml:"rating"`
	Experience     string  `gorm:"type:varchar(60)" json:"experience" yaml:"experience"`
	Bio            string  `gorm:"type:text" json:"bio" yaml:"bio"`
	Education      string  `gorm:"type:varchar(200)" json:"education" yaml:"education"`
	Consultations  int     `gorm:"default:0" json:"consultations" yaml:"consultations"`
	Image          string  `gorm:"type:varchar(500)" json:"image" yaml:"image"`
	SortOrder      int     `gorm:"default:0;index" json:"sort_order" yaml:"sort_order"`
}

// TableName 指定表名
func (Expert) TableName() string {
	return "experts"
}
