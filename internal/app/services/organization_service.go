package services

import (
	"context"

	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
)

// OrganizationService manages companies and their departments (admin only)
type OrganizationService struct {
	companyRepo *repositories.CompanyRepository
	logger      zerolog.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(companyRepo *repositories.CompanyRepository, logger zerolog.Logger) *OrganizationService {
	return &OrganizationService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// CreateCompany creates a company
func (s *OrganizationService) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:    req.Name,
		Address: req.Address,
	}

	id, err := s.companyRepo.CreateCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	company.ID = id

	s.logger.Info().Int64("companyId", id).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// GetCompany returns a company with its departments
func (s *OrganizationService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetCompanyByID(ctx, id)
}

// ListCompanies returns all companies
func (s *OrganizationService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.companyRepo.ListCompanies(ctx)
}

// UpdateCompany applies partial updates to a company
func (s *OrganizationService) UpdateCompany(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}

	if err := s.companyRepo.UpdateCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes a company; departments and postings cascade
func (s *OrganizationService) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.companyRepo.DeleteCompany(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("companyId", id).Msg("Company deleted")
	return nil
}

// CreateDepartment adds a department under a company. Department names are
// unique within one company only.
func (s *OrganizationService) CreateDepartment(ctx context.Context, companyID int64, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		CompanyID: companyID,
		Name:      req.Name,
	}

	id, err := s.companyRepo.CreateDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	department.ID = id

	return department, nil
}

// ListDepartments returns a company's departments
func (s *OrganizationService) ListDepartments(ctx context.Context, companyID int64) ([]*models.Department, error) {
	if _, err := s.companyRepo.GetCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.companyRepo.ListDepartments(ctx, companyID)
}

// RenameDepartment renames a department within its company
func (s *OrganizationService) RenameDepartment(ctx context.Context, departmentID int64, req *dto.UpdateDepartmentRequest) error {
	return s.companyRepo.RenameDepartment(ctx, departmentID, req.Name)
}

// DeleteDepartment removes a department. Supervisors assigned to it keep
// their accounts with the assignment cleared.
func (s *OrganizationService) DeleteDepartment(ctx context.Context, departmentID int64) error {
	return s.companyRepo.DeleteDepartment(ctx, departmentID)
}
