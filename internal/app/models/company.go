package models

// Company represents a host organization offering internships
type Company struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`

	Departments []*Department `json:"departments,omitempty"` // Relation, no db tag
}

// Department belongs to exactly one company; name unique within that company
type Department struct {
	ID        int64  `json:"id" db:"id"`
	CompanyID int64  `json:"companyId" db:"company_id"`
	Name      string `json:"name" db:"name"`

	Company *Company `json:"company,omitempty"` // Relation, no db tag
}
