package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/db"
	"internhub/internal/pkg/apperrors"
	"internhub/internal/pkg/auth"
)

// UserService handles administrative user management. User and role profile
// are always created in one transaction so a user never exists without its
// profile.
type UserService struct {
	database *db.PostgresDB
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(database *db.PostgresDB, userRepo *repositories.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		database: database,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates the user row and its role profile atomically
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := s.userRepo.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		switch role {
		case models.RoleStudent:
			_, err = s.userRepo.CreateStudentTx(ctx, tx, &models.Student{
				UserID:               userID,
				Program:              req.Program,
				Semester:             req.Semester,
				AcademicSupervisorID: req.AcademicSupervisorID,
			})
		case models.RoleAcademic:
			_, err = s.userRepo.CreateAcademicSupervisorTx(ctx, tx, &models.AcademicSupervisor{
				UserID:  userID,
				Faculty: req.Faculty,
			})
		case models.RoleCompany:
			_, err = s.userRepo.CreateCompanySupervisorTx(ctx, tx, &models.CompanySupervisor{
				UserID:       userID,
				CompanyID:    req.CompanyID,
				DepartmentID: req.DepartmentID,
			})
		case models.RoleAdmin:
			// Admins carry no profile record
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(role)).Msg("User created")

	return user, nil
}

// GetUser returns a user with its role profile attached
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserDetailResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.UserDetailResponse{UserResponse: dto.FromUser(user)}

	switch user.Role {
	case models.RoleStudent:
		detail.Student, err = s.userRepo.GetStudentByUserID(ctx, id)
	case models.RoleAcademic:
		detail.AcademicSupervisor, err = s.userRepo.GetAcademicSupervisorByUserID(ctx, id)
	case models.RoleCompany:
		detail.CompanySupervisor, err = s.userRepo.GetCompanySupervisorByUserID(ctx, id)
	case models.RoleAdmin:
	}
	if err != nil {
		return nil, fmt.Errorf("error loading role profile: %w", err)
	}

	return detail, nil
}

// ListUsers returns users filtered by role
func (s *UserService) ListUsers(ctx context.Context, role string, offset uint64, limit int) ([]*models.User, int, error) {
	var parsed models.Role
	if role != "" {
		var err error
		parsed, err = models.ParseRole(role)
		if err != nil {
			return nil, 0, apperrors.NewBadRequestError(err.Error())
		}
	}
	return s.userRepo.ListUsers(ctx, parsed, offset, limit)
}

// UpdateUser applies partial updates to a user and its role profile
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserDetailResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	switch user.Role {
	case models.RoleStudent:
		if req.Program != nil || req.Semester != nil || req.AcademicSupervisorID != nil {
			student, err := s.userRepo.GetStudentByUserID(ctx, id)
			if err != nil {
				return nil, err
			}
			if req.Program != nil {
				student.Program = *req.Program
			}
			if req.Semester != nil {
				student.Semester = *req.Semester
			}
			if req.AcademicSupervisorID != nil {
				student.AcademicSupervisorID = req.AcademicSupervisorID
			}
			if err := s.userRepo.UpdateStudentProfile(ctx, student); err != nil {
				return nil, err
			}
		}
	case models.RoleAcademic:
		if req.Faculty != nil {
			supervisor, err := s.userRepo.GetAcademicSupervisorByUserID(ctx, id)
			if err != nil {
				return nil, err
			}
			supervisor.Faculty = *req.Faculty
			if err := s.userRepo.UpdateAcademicSupervisorProfile(ctx, supervisor); err != nil {
				return nil, err
			}
		}
	case models.RoleCompany:
		if req.CompanyID != nil || req.DepartmentID != nil {
			supervisor, err := s.userRepo.GetCompanySupervisorByUserID(ctx, id)
			if err != nil {
				return nil, err
			}
			if req.CompanyID != nil {
				supervisor.CompanyID = req.CompanyID
			}
			if req.DepartmentID != nil {
				supervisor.DepartmentID = req.DepartmentID
			}
			if err := s.userRepo.UpdateCompanySupervisorProfile(ctx, supervisor); err != nil {
				return nil, err
			}
		}
	case models.RoleAdmin:
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes a user; the schema cascades to every dependent record.
// Admins cannot delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return apperrors.NewForbiddenError("you cannot delete your own account")
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", id).Int64("deletedBy", actorID).Msg("User deleted")
	return nil
}
