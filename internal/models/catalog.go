package models

// Category and Supplier are reference tables filled at startup; the web
// interface only reads them.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null"`
}

type Supplier struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null"`
}

type Instrument struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:80;not null"`

	// SearchName is the lowercased Name, kept by the store for substring search.
	SearchName string `gorm:"size:160;not null;default:'';index"`

	// image references are opaque paths or URLs, empty when absent
	Image  string `gorm:"size:500"`
	Image2 string `gorm:"column:image_2;size:500"`

	CategoryID uint `gorm:"not null;index"`
	Category   Category
	SupplierID uint `gorm:"not null;index"`
	Supplier   Supplier
}
