package dto

// CreateCompanyRequest creates a company
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255" example:"Acme Corp"`
	Address string `json:"address" binding:"required" example:"1 Factory Rd"`
}

// UpdateCompanyRequest updates company attributes
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address,omitempty"`
}

// CreateDepartmentRequest adds a department under a company. The name must
// be unique within that company.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255" example:"Engineering"`
}

// UpdateDepartmentRequest renames a department
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
