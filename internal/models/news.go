package models

// NewsModel is a news article.
type NewsModel struct {
	ContentBase
	Title           string      `json:"title"`
	Summary         string      `json:"summary"         gorm:"type:text"`
	Body            string      `json:"body"            gorm:"type:longtext"`
	Category        string      `json:"category"        gorm:"size:40;index"`
	Tags            StringSlice `json:"tags"            gorm:"type:text"`
	AuthorID        *uint       `json:"authorId"        gorm:"index"`
	Author          *UserModel  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	MainImage       *ImageRef   `json:"mainImage"       gorm:"type:text"`
	MetaTitle       string      `json:"metaTitle"`
	MetaDescription string      `json:"metaDescription" gorm:"type:text"`
}

func (NewsModel) TableName() string { return "news" }
