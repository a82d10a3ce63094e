package domain

import (
	"strings"
	"time"
)

// Employee is an employee or offer candidate. Offer letters reuse the same shape
// for candidates, so compensation lives on the record itself.
type Employee struct {
	ID             string  `json:"id,omitempty"`
	CompanyID      string  `json:"company_id,omitempty"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	FirstName      string  `json:"first_name,omitempty"`
	LastName       string  `json:"last_name,omitempty"`
	FullName       string  `json:"full_name,omitempty"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Nationality    string  `json:"nationality,omitempty"`
	NationalID     string  `json:"national_id,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`

	PositionID     string `json:"position_id,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	WorkLocationID string `json:"work_location_id,omitempty"`
	ManagerID      string `json:"manager_id,omitempty"`

	Salary             *float64 `json:"salary,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	BasicSalary        *float64 `json:"basic_salary,omitempty"`
	HousingAllowance   *float64 `json:"housing_allowance,omitempty"`
	TransportAllowance *float64 `json:"transport_allowance,omitempty"`
	OtherAllowance     *float64 `json:"other_allowance,omitempty"`
	// TotalAllowances is whatever was last stored; renders always recompute it.
	TotalAllowances *float64 `json:"total_allowances,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Name returns FullName, or first and last name joined when FullName is unset.
func (e *Employee) Name() string {
	if e.FullName != "" {
		return e.FullName
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Position is a job position.
type Position struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Code  string `json:"code,omitempty"`
	Grade string `json:"grade,omitempty"`
}

// Department is an organizational unit.
type Department struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// WorkLocation is a physical site employees are assigned to.
type WorkLocation struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Company is the employing entity whose letterhead appears on documents.
type Company struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name,omitempty"`
	LegalName          string `json:"legal_name,omitempty"`
	Street             string `json:"street,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	Zip                string `json:"zip,omitempty"`
	Country            string `json:"country,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	Website            string `json:"website,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	LogoURL            string `json:"logo_url,omitempty"`
	Currency           string `json:"currency,omitempty"`
	SignatoryName      string `json:"signatory_name,omitempty"`
	SignatoryTitle     string `json:"signatory_title,omitempty"`
}

// RenderData is the per-render aggregate of source records.
// Every group is optional; missing groups resolve to their documented defaults.
type RenderData struct {
	Employee     *Employee     `json:"employee,omitempty"`
	Position     *Position     `json:"position,omitempty"`
	Department   *Department   `json:"department,omitempty"`
	WorkLocation *WorkLocation `json:"work_location,omitempty"`
	Manager      *Employee     `json:"manager,omitempty"`
	Company      *Company      `json:"company,omitempty"`

	// EndDate overrides the employee's end date, used by experience certificates.
	EndDate *string `json:"end_date,omitempty"`
	// ExpiryDays is the offer validity window; nil uses the configured default.
	ExpiryDays *int `json:"expiry_days,omitempty"`
}
