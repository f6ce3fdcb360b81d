package model

import (
	"time"

	"gorm.io/gorm"
)

type Part struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	PartNumber  string `gorm:"type:varchar(100);index" json:"part_number"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Stock       int64  `gorm:"not null" json:"stock"`

	//対応機種（カンマ区切りなどの自由記述）
	CompatibleModels string `gorm:"type:text" json:"compatible_models"`

	CategoryID *int64 `gorm:"index" json:"category_id"`
	BrandID    *int64 `gorm:"index" json:"brand_id"`

	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Images []ProductImage `gorm:"-" json:"images,omitempty"`
}
