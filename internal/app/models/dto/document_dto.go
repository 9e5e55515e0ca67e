package dto

import (
	"time"

	"internhub/internal/app/models"
)

// DocumentResponse is an uploaded document without its storage path
type DocumentResponse struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	DocType    string    `json:"docType"`
	UploadDate time.Time `json:"uploadDate"`
}

// FromDocument converts a document model into its response shape
func FromDocument(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		FileName:   d.FileName,
		DocType:    d.DocType,
		UploadDate: d.UploadDate,
	}
}
