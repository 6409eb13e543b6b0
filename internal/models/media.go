package models

// Media is a metadata record for an uploaded file. The bytes themselves are
// stored and served outside this backend; only the descriptor lives here.
type Media struct {
	Base
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	StoragePath  string `gorm:"size:512;not null" json:"storage_path"`
	MimeType     string `gorm:"size:100" json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	AltText      string `gorm:"size:255" json:"alt_text"`
	UploadedByID string `gorm:"type:uuid;not null" json:"uploaded_by_id"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// TableName keeps the table singular; the default naming strategy would
// pluralize Media to "medias".
func (Media) TableName() string {
	return "media"
}
