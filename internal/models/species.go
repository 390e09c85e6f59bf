package models

// SpeciesModel is a species profile (fauna or flora).
type SpeciesModel struct {
	ContentBase
	CommonName         string      `json:"commonName"`
	ScientificName     string      `json:"scientificName" gorm:"index"`
	Family             string      `json:"family"`
	Category           string      `json:"category"           gorm:"size:40;index"`
	ConservationStatus string      `json:"conservationStatus" gorm:"size:10;index"`
	Region             string      `json:"region"             gorm:"size:60;index"`
	Description        string      `json:"description"        gorm:"type:longtext"`
	Habitat            string      `json:"habitat"            gorm:"type:text"`
	Threats            StringSlice `json:"threats"            gorm:"type:text"`
	MainImage          *ImageRef   `json:"mainImage"          gorm:"type:text"`
	Gallery            ImageList   `json:"gallery"            gorm:"type:longtext"`
	MetaTitle          string      `json:"metaTitle"`
	MetaDescription    string      `json:"metaDescription"    gorm:"type:text"`
}

func (SpeciesModel) TableName() string { return "species" }
