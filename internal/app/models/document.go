package models

import "time"

// Document is a file uploaded by a student, tagged with a document type
// (e.g. "Resume").
type Document struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileName   string    `json:"fileName" db:"file_name"`
	DocType    string    `json:"docType" db:"doc_type"`
	UploadDate time.Time `json:"uploadDate" db:"upload_date"`
}

// DocTypeResume is the tag used for resumes stored during Submit.
const DocTypeResume = "Resume"
