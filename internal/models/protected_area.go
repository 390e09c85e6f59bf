package models

// ProtectedAreaModel is a protected natural area (park, reserve, ramsar site).
type ProtectedAreaModel struct {
	ContentBase
	Name            string      `json:"name"`
	Designation     string      `json:"designation"     gorm:"size:40;index"`
	Region          string      `json:"region"          gorm:"size:60;index"`
	AreaKm2         *float64    `json:"areaKm2"`
	Ecosystems      StringSlice `json:"ecosystems"      gorm:"type:text"`
	Description     string      `json:"description"     gorm:"type:longtext"`
	VisitorInfo     string      `json:"visitorInfo"     gorm:"type:longtext"`
	MainImage       *ImageRef   `json:"mainImage"       gorm:"type:text"`
	Gallery         ImageList   `json:"gallery"         gorm:"type:longtext"`
	MetaTitle       string      `json:"metaTitle"`
	MetaDescription string      `json:"metaDescription" gorm:"type:text"`
}

func (ProtectedAreaModel) TableName() string { return "protected_areas" }
