package services

import (
	"context"

	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

// DocumentService manages a student's uploaded documents. File bytes are
// handled by the storage layer in the controller; this service owns the
// metadata rows and the ownership checks.
type DocumentService struct {
	documentRepo *repositories.DocumentRepository
	userRepo     *repositories.UserRepository
	logger       zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo *repositories.DocumentRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// ListMine returns the acting student's documents
func (s *DocumentService) ListMine(ctx context.Context, studentUserID int64) ([]*models.Document, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	return s.documentRepo.ListByStudent(ctx, student.ID)
}

// Upload records an uploaded document for the acting student
func (s *DocumentService) Upload(ctx context.Context, studentUserID int64, filePath, fileName, docType string) (*models.Document, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	document := &models.Document{
		StudentID: student.ID,
		FilePath:  filePath,
		FileName:  fileName,
		DocType:   docType,
	}

	id, err := s.documentRepo.CreateDocumentTx(ctx, nil, document)
	if err != nil {
		return nil, err
	}
	document.ID = id

	s.logger.Info().Int64("documentId", id).Int64("studentId", student.ID).Str("docType", docType).Msg("Document uploaded")
	return document, nil
}

// Replace swaps the stored file of an owned document and returns the old
// path so the controller can remove the previous file.
func (s *DocumentService) Replace(ctx context.Context, studentUserID, documentID int64, filePath, fileName string) (oldPath string, err error) {
	document, err := s.owned(ctx, studentUserID, documentID)
	if err != nil {
		return "", err
	}

	oldPath = document.FilePath
	document.FilePath = filePath
	document.FileName = fileName

	if err := s.documentRepo.UpdateDocument(ctx, document); err != nil {
		return "", err
	}
	return oldPath, nil
}

// Delete removes an owned document row and returns its stored path so the
// controller can remove the file.
func (s *DocumentService) Delete(ctx context.Context, studentUserID, documentID int64) (filePath string, err error) {
	document, err := s.owned(ctx, studentUserID, documentID)
	if err != nil {
		return "", err
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		return "", err
	}
	return document.FilePath, nil
}

func (s *DocumentService) owned(ctx context.Context, studentUserID, documentID int64) (*models.Document, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	document, err := s.documentRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document.StudentID != student.ID {
		return nil, apperrors.NewForbiddenError("document belongs to another student")
	}

	return document, nil
}
