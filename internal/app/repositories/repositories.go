package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Repository methods that must participate in a caller-controlled
// transaction take a DBTX instead of using the pool directly.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	CompanyRepository      *CompanyRepository
	InternshipRepository   *InternshipRepository
	ApplicationRepository  *ApplicationRepository
	PlacementRepository    *PlacementRepository
	AttendanceRepository   *AttendanceRepository
	LogbookRepository      *LogbookRepository
	EvaluationRepository   *EvaluationRepository
	DocumentRepository     *DocumentRepository
	NotificationRepository *NotificationRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		CompanyRepository:      NewCompanyRepository(db),
		InternshipRepository:   NewInternshipRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		PlacementRepository:    NewPlacementRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		LogbookRepository:      NewLogbookRepository(db),
		EvaluationRepository:   NewEvaluationRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
