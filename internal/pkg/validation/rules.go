package validation

import (
	"path/filepath"
	"strings"
)

// AllowedDocumentExtensions lists the accepted upload types for student
// documents and resumes.
var AllowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// IsAllowedDocument checks an uploaded filename against the document
// extension allow-list.
func IsAllowedDocument(filename string) bool {
	return AllowedDocumentExtensions[strings.ToLower(filepath.Ext(filename))]
}
