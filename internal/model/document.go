package model

// Document 上传的源文档，ExtractedText 为出题用的正文
type Document struct {
	BaseModel
	UserID        uint   `gorm:"index;not null" json:"userId"`
	Filename      string `gorm:"size:255;not null" json:"filename"`
	StoragePath   string `gorm:"size:512" json:"-"`
	FileSize      int64  `json:"fileSize"`
	ContentType   string `gorm:"size:100" json:"contentType"`
	ExtractedText string `gorm:"type:longtext" json:"-"`
	Processed     bool   `gorm:"default:false" json:"processed"`
}

func (Document) TableName() string {
	return "documents"
}
