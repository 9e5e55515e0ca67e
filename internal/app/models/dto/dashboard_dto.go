package dto

import "internhub/internal/app/models"

// StudentDashboardResponse summarizes the student's current state
type StudentDashboardResponse struct {
	Placement           *models.InternshipPlacement `json:"placement,omitempty"`
	ApplicationCount    int                         `json:"applicationCount"`
	PendingApplications int                         `json:"pendingApplications"`
	LatestLogbook       *models.Logbook             `json:"latestLogbook,omitempty"`
	UnreadNotifications int                         `json:"unreadNotifications"`
}

// CompanyDashboardResponse summarizes the supervisor's workload
type CompanyDashboardResponse struct {
	ActiveInterns           int `json:"activeInterns"`
	PendingApplications     int `json:"pendingApplications"`
	PendingLogbooks         int `json:"pendingLogbooks"`
	UnmarkedAttendanceToday int `json:"unmarkedAttendanceToday"`
	PendingEvaluations      int `json:"pendingEvaluations"`
}

// AdminDashboardResponse holds the global entity and status counters
type AdminDashboardResponse struct {
	Users        map[string]int `json:"users"`        // per role
	Companies    int            `json:"companies"`    // total companies
	Internships  map[string]int `json:"internships"`  // per status
	Applications map[string]int `json:"applications"` // per status
	Placements   map[string]int `json:"placements"`   // per status
	Logbooks     map[string]int `json:"logbooks"`     // per status
	Evaluations  int            `json:"evaluations"`  // total rows
}
