package models

import "fmt"

// Role defines the user role type. Exactly one role is assigned per user and
// it never changes after creation.
type Role string

const (
	RoleStudent  Role = "student"
	RoleCompany  Role = "company"  // company supervisor
	RoleAcademic Role = "academic" // academic supervisor
	RoleAdmin    Role = "admin"
)

// ParseRole converts a string into a Role, rejecting anything outside the
// closed set so role dispatch can never fall through silently.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleCompany, RoleAcademic, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// InternshipStatus marks a posting as open or closed for applications
type InternshipStatus string

const (
	InternshipOpen   InternshipStatus = "Open"
	InternshipClosed InternshipStatus = "Closed"
)

// ApplicationStatus is the supervisor-facing state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
	ApplicationOffered  ApplicationStatus = "Offered"
)

// StudentDecision records the student's response to an offer
type StudentDecision string

const (
	DecisionPending  StudentDecision = "Pending"
	DecisionAccepted StudentDecision = "Accepted"
	DecisionRejected StudentDecision = "Rejected"
)

// PlacementStatus is the lifecycle state of a placement
type PlacementStatus string

const (
	PlacementActive    PlacementStatus = "Active"
	PlacementCompleted PlacementStatus = "Completed"
)

// LogbookStatus is the review state of a weekly logbook
type LogbookStatus string

const (
	LogbookPending  LogbookStatus = "Pending"
	LogbookApproved LogbookStatus = "Approved"
	LogbookRejected LogbookStatus = "Rejected"
)

// EvaluationSide distinguishes the two independently submitted halves of a
// performance evaluation.
type EvaluationSide string

const (
	SideCompany  EvaluationSide = "company"
	SideAcademic EvaluationSide = "academic"
)

// ParseEvaluationSide validates a side name coming from a request.
func ParseEvaluationSide(s string) (EvaluationSide, error) {
	switch EvaluationSide(s) {
	case SideCompany, SideAcademic:
		return EvaluationSide(s), nil
	default:
		return "", fmt.Errorf("unknown evaluation side %q", s)
	}
}

// LogbookWeeks is the institution-defined number of reporting weeks.
const LogbookWeeks = 12
