package catalog

import (
	"strings"

	"github.com/peoplehub/hrdocs/internal/domain"
)

// Display categories.
const (
	CategoryEmployee     = "Employee"
	CategoryEmployment   = "Employment"
	CategoryCompensation = "Compensation"
	CategoryCompany      = "Company"
	CategorySignature    = "Signature"
	CategoryDate         = "Date"
)

// Categories lists the built-in categories in display order.
var Categories = []string{
	CategoryEmployee,
	CategoryEmployment,
	CategoryCompensation,
	CategoryCompany,
	CategorySignature,
	CategoryDate,
}

func builtin(name, field string, source domain.Source, category, description string) domain.SmartTag {
	return domain.SmartTag{
		ID:          SystemTagID(field),
		Tag:         domain.Token(name),
		Field:       field,
		Source:      source,
		Category:    category,
		Description: description,
		IsSystem:    true,
		IsActive:    true,
		Version:     1,
	}
}

var builtinTags = []domain.SmartTag{
	builtin("First Name", FieldFirstName, domain.SourceEmployee, CategoryEmployee, "Employee first name"),
	builtin("Last Name", FieldLastName, domain.SourceEmployee, CategoryEmployee, "Employee last name"),
	builtin("Full Name", FieldFullName, domain.SourceEmployee, CategoryEmployee, "Employee full name"),
	builtin("Employee ID", FieldEmployeeNumber, domain.SourceEmployee, CategoryEmployee, "Employee number"),
	builtin("Email", FieldEmail, domain.SourceEmployee, CategoryEmployee, "Employee email"),
	builtin("Phone", FieldPhone, domain.SourceEmployee, CategoryEmployee, "Employee phone"),
	builtin("Nationality", FieldNationality, domain.SourceEmployee, CategoryEmployee, "Employee nationality"),
	builtin("National ID", FieldNationalID, domain.SourceEmployee, CategoryEmployee, "National identity number"),
	builtin("Date of Birth", FieldDateOfBirth, domain.SourceEmployee, CategoryEmployee, "Employee date of birth"),

	builtin("Job Title", FieldJobTitle, domain.SourcePosition, CategoryEmployment, "Position title"),
	builtin("Position Code", FieldPositionCode, domain.SourcePosition, CategoryEmployment, "Position code"),
	builtin("Grade", FieldPositionGrade, domain.SourcePosition, CategoryEmployment, "Pay grade"),
	builtin("Department", FieldDepartmentName, domain.SourceDepartment, CategoryEmployment, "Department name"),
	builtin("Department Code", FieldDepartmentCode, domain.SourceDepartment, CategoryEmployment, "Department code"),
	builtin("Work Location", FieldWorkLocationName, domain.SourceWorkLocation, CategoryEmployment, "Work location name"),
	builtin("Work Location Address", FieldWorkLocationAddress, domain.SourceWorkLocation, CategoryEmployment, "Work location address"),
	builtin("Manager Name", FieldManagerName, domain.SourceManager, CategoryEmployment, "Direct manager"),
	builtin("Manager Email", FieldManagerEmail, domain.SourceManager, CategoryEmployment, "Direct manager email"),
	builtin("Start Date", FieldHireDate, domain.SourceEmployee, CategoryEmployment, "Joining date"),
	builtin("End Date", FieldEndDate, domain.SourceSystem, CategoryEmployment, "End date, or Present"),
	builtin("Employment Type", FieldEmploymentType, domain.SourceEmployee, CategoryEmployment, "Employment type"),

	builtin("Salary", FieldSalary, domain.SourceEmployee, CategoryCompensation, "Monthly salary"),
	builtin("Currency", FieldCurrency, domain.SourceEmployee, CategoryCompensation, "Salary currency"),
	builtin("Basic Salary", FieldBasicSalary, domain.SourceEmployee, CategoryCompensation, "Basic salary"),
	builtin("Housing Allowance", FieldHousingAllowance, domain.SourceEmployee, CategoryCompensation, "Housing allowance"),
	builtin("Transport Allowance", FieldTransportAllowance, domain.SourceEmployee, CategoryCompensation, "Transport allowance"),
	builtin("Other Allowance", FieldOtherAllowance, domain.SourceEmployee, CategoryCompensation, "Other allowances"),
	builtin("Total Allowances", FieldTotalAllowances, domain.SourceEmployee, CategoryCompensation, "Sum of all allowances"),
	builtin("Total Package", FieldTotalPackage, domain.SourceEmployee, CategoryCompensation, "Basic salary plus allowances"),

	builtin("Company Name", FieldCompanyName, domain.SourceCompany, CategoryCompany, "Company name"),
	builtin("Company Legal Name", FieldCompanyLegalName, domain.SourceCompany, CategoryCompany, "Registered legal name"),
	builtin("Company Address", FieldCompanyAddress, domain.SourceCompany, CategoryCompany, "Full company address"),
	builtin("Company Phone", FieldCompanyPhone, domain.SourceCompany, CategoryCompany, "Company phone"),
	builtin("Company Email", FieldCompanyEmail, domain.SourceCompany, CategoryCompany, "Company email"),
	builtin("Company Website", FieldCompanyWebsite, domain.SourceCompany, CategoryCompany, "Company website"),
	builtin("Commercial Registration", FieldCompanyRegistration, domain.SourceCompany, CategoryCompany, "CR number"),
	builtin("Company Logo", FieldCompanyLogo, domain.SourceCompany, CategoryCompany, "Company logo image"),

	builtin("Signatory Name", FieldSignatoryName, domain.SourceCompany, CategorySignature, "Authorized signatory"),
	builtin("Signatory Title", FieldSignatoryTitle, domain.SourceCompany, CategorySignature, "Signatory job title"),

	builtin("Current Date", FieldCurrentDate, domain.SourceSystem, CategoryDate, "Today's date"),
	builtin("Current Year", FieldCurrentYear, domain.SourceSystem, CategoryDate, "Current year"),
	builtin("Offer Expiry Date", FieldOfferExpiryDate, domain.SourceSystem, CategoryDate, "Offer valid until"),
}

// Builtin returns a copy of the compiled-in smart tags.
func Builtin() []domain.SmartTag {
	out := make([]domain.SmartTag, len(builtinTags))
	copy(out, builtinTags)
	return out
}

// TagsByCategory returns the built-in tags whose category matches exactly.
func TagsByCategory(category string) []domain.SmartTag {
	var out []domain.SmartTag
	for _, t := range builtinTags {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// SystemTagID derives the stable ID a built-in tag is seeded under.
func SystemTagID(field string) string {
	return "sys-" + strings.ReplaceAll(field, "_", "-")
}
