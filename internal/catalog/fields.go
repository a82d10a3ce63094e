// Package catalog holds the compiled-in field registry and built-in smart tags.
package catalog

import "github.com/peoplehub/hrdocs/internal/domain"

// Field identifiers. They are unique across sources.
const (
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldFullName           = "full_name"
	FieldEmployeeNumber     = "employee_number"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldNationality        = "nationality"
	FieldNationalID         = "national_id"
	FieldDateOfBirth        = "date_of_birth"
	FieldHireDate           = "hire_date"
	FieldEmploymentType     = "employment_type"
	FieldSalary             = "salary"
	FieldCurrency           = "currency"
	FieldBasicSalary        = "basic_salary"
	FieldHousingAllowance   = "housing_allowance"
	FieldTransportAllowance = "transport_allowance"
	FieldOtherAllowance     = "other_allowance"
	FieldTotalAllowances    = "total_allowances"
	FieldTotalPackage       = "total_package"

	FieldJobTitle      = "job_title"
	FieldPositionCode  = "position_code"
	FieldPositionGrade = "position_grade"

	FieldDepartmentName = "department_name"
	FieldDepartmentCode = "department_code"

	FieldWorkLocationName    = "work_location_name"
	FieldWorkLocationAddress = "work_location_address"

	FieldManagerName  = "manager_name"
	FieldManagerEmail = "manager_email"

	FieldCompanyName         = "company_name"
	FieldCompanyLegalName    = "company_legal_name"
	FieldCompanyAddress      = "company_address"
	FieldCompanyPhone        = "company_phone"
	FieldCompanyEmail        = "company_email"
	FieldCompanyWebsite      = "company_website"
	FieldCompanyRegistration = "company_registration"
	FieldCompanyLogo         = "company_logo"
	FieldSignatoryName       = "signatory_name"
	FieldSignatoryTitle      = "signatory_title"

	FieldCurrentDate     = "current_date"
	FieldCurrentYear     = "current_year"
	FieldOfferExpiryDate = "offer_expiry_date"
	FieldEndDate         = "end_date"
)

var sourceFields = map[domain.Source][]domain.SourceField{
	domain.SourceEmployee: {
		{Field: FieldFirstName, Label: "First Name", Description: "Given name"},
		{Field: FieldLastName, Label: "Last Name", Description: "Family name"},
		{Field: FieldFullName, Label: "Full Name", Description: "Full display name"},
		{Field: FieldEmployeeNumber, Label: "Employee ID", Description: "HR employee number"},
		{Field: FieldEmail, Label: "Email", Description: "Work email address"},
		{Field: FieldPhone, Label: "Phone", Description: "Contact phone number"},
		{Field: FieldNationality, Label: "Nationality", Description: "Nationality"},
		{Field: FieldNationalID, Label: "National ID", Description: "National identity number"},
		{Field: FieldDateOfBirth, Label: "Date of Birth", Description: "Date of birth, long format"},
		{Field: FieldHireDate, Label: "Start Date", Description: "Joining date, long format"},
		{Field: FieldEmploymentType, Label: "Employment Type", Description: "Full-time, part-time, contract"},
		{Field: FieldSalary, Label: "Salary", Description: "Monthly salary amount"},
		{Field: FieldCurrency, Label: "Currency", Description: "Salary currency code"},
		{Field: FieldBasicSalary, Label: "Basic Salary", Description: "Basic salary, two decimals"},
		{Field: FieldHousingAllowance, Label: "Housing Allowance", Description: "Housing allowance, two decimals"},
		{Field: FieldTransportAllowance, Label: "Transport Allowance", Description: "Transport allowance, two decimals"},
		{Field: FieldOtherAllowance, Label: "Other Allowance", Description: "Other allowances, two decimals"},
		{Field: FieldTotalAllowances, Label: "Total Allowances", Description: "Housing + transport + other"},
		{Field: FieldTotalPackage, Label: "Total Package", Description: "Basic salary + total allowances"},
	},
	domain.SourceCompany: {
		{Field: FieldCompanyName, Label: "Company Name", Description: "Trading name"},
		{Field: FieldCompanyLegalName, Label: "Legal Name", Description: "Registered legal name"},
		{Field: FieldCompanyAddress, Label: "Company Address", Description: "Street, city, state, zip, country"},
		{Field: FieldCompanyPhone, Label: "Company Phone", Description: "Main phone number"},
		{Field: FieldCompanyEmail, Label: "Company Email", Description: "Main email address"},
		{Field: FieldCompanyWebsite, Label: "Company Website", Description: "Website URL"},
		{Field: FieldCompanyRegistration, Label: "Registration Number", Description: "Commercial registration number"},
		{Field: FieldCompanyLogo, Label: "Company Logo", Description: "Logo image"},
		{Field: FieldSignatoryName, Label: "Signatory Name", Description: "Authorized signatory"},
		{Field: FieldSignatoryTitle, Label: "Signatory Title", Description: "Authorized signatory title"},
	},
	domain.SourcePosition: {
		{Field: FieldJobTitle, Label: "Job Title", Description: "Position title"},
		{Field: FieldPositionCode, Label: "Position Code", Description: "Internal position code"},
		{Field: FieldPositionGrade, Label: "Grade", Description: "Pay grade"},
	},
	domain.SourceDepartment: {
		{Field: FieldDepartmentName, Label: "Department", Description: "Department name"},
		{Field: FieldDepartmentCode, Label: "Department Code", Description: "Department code"},
	},
	domain.SourceWorkLocation: {
		{Field: FieldWorkLocationName, Label: "Work Location", Description: "Site name"},
		{Field: FieldWorkLocationAddress, Label: "Work Location Address", Description: "Site address"},
	},
	domain.SourceManager: {
		{Field: FieldManagerName, Label: "Manager Name", Description: "Direct manager's full name"},
		{Field: FieldManagerEmail, Label: "Manager Email", Description: "Direct manager's email"},
	},
	domain.SourceSystem: {
		{Field: FieldCurrentDate, Label: "Current Date", Description: "Today, long format"},
		{Field: FieldCurrentYear, Label: "Current Year", Description: "Four-digit year"},
		{Field: FieldOfferExpiryDate, Label: "Offer Expiry Date", Description: "Today plus the offer validity window"},
		{Field: FieldEndDate, Label: "End Date", Description: "Employment end date, or Present"},
	},
}

// FieldsForSource returns the fields a tag of the given source may reference.
// Unknown sources return an empty slice.
func FieldsForSource(source domain.Source) []domain.SourceField {
	fields := sourceFields[source]
	out := make([]domain.SourceField, len(fields))
	copy(out, fields)
	return out
}

// HasField reports whether field belongs to source.
func HasField(source domain.Source, field string) bool {
	for _, f := range sourceFields[source] {
		if f.Field == field {
			return true
		}
	}
	return false
}
