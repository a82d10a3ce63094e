// Package resolver turns render records into the flat field → display value map
// consumed by the template renderer.
package resolver

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/peoplehub/hrdocs/internal/catalog"
	"github.com/peoplehub/hrdocs/internal/domain"
)

// Defaults applied when no option overrides them.
const (
	DefaultExpiryDays    = 7
	DefaultLogoMaxHeight = 60
)

// Resolver formats render records. It holds no per-render state and is safe for
// concurrent use.
type Resolver struct {
	now           func() time.Time
	expiryDays    int
	logoMaxHeight int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the time source used for date tokens.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithExpiryDays sets the default offer validity window.
func WithExpiryDays(days int) Option {
	return func(r *Resolver) {
		if days > 0 {
			r.expiryDays = days
		}
	}
}

// WithLogoMaxHeight sets the display height, in pixels, of the logo image.
func WithLogoMaxHeight(px int) Option {
	return func(r *Resolver) {
		if px > 0 {
			r.logoMaxHeight = px
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		now:           time.Now,
		expiryDays:    DefaultExpiryDays,
		logoMaxHeight: DefaultLogoMaxHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the value map for one render.
//
// Every registered field is present, falling back to its default when the record
// is missing. When tags are given, each active tag whose field resolved also adds
// an entry under its display name. Field identifiers always take precedence over
// display-name aliases, and among aliases the first tag in the given order wins.
func (r *Resolver) Resolve(data domain.RenderData, tags []domain.SmartTag) map[string]string {
	values := r.fields(data)
	addAliases(values, tags)
	return values
}

func addAliases(values map[string]string, tags []domain.SmartTag) {
	fieldKeys := make(map[string]bool, len(values))
	for k := range values {
		fieldKeys[k] = true
	}

	for i := range tags {
		t := &tags[i]
		if !t.IsActive {
			continue
		}
		if !fieldKeys[t.Field] {
			continue
		}
		v := values[t.Field]
		alias := t.DisplayName()
		if alias == "" || fieldKeys[alias] {
			continue
		}
		if _, taken := values[alias]; taken {
			continue
		}
		values[alias] = v
	}
}

func (r *Resolver) fields(data domain.RenderData) map[string]string {
	values := make(map[string]string, 48)

	r.employeeFields(values, data.Employee, data.Company)
	positionFields(values, data.Position)
	departmentFields(values, data.Department)
	workLocationFields(values, data.WorkLocation)
	managerFields(values, data.Manager)
	r.companyFields(values, data.Company)
	r.systemFields(values, data)

	return values
}

func (r *Resolver) employeeFields(values map[string]string, e *domain.Employee, c *domain.Company) {
	if e == nil {
		e = &domain.Employee{}
	}

	values[catalog.FieldFirstName] = e.FirstName
	values[catalog.FieldLastName] = e.LastName
	values[catalog.FieldFullName] = e.Name()
	values[catalog.FieldEmployeeNumber] = e.EmployeeNumber
	values[catalog.FieldEmail] = e.Email
	values[catalog.FieldPhone] = e.Phone
	values[catalog.FieldNationality] = e.Nationality
	values[catalog.FieldNationalID] = e.NationalID
	values[catalog.FieldDateOfBirth] = FormatDate(e.DateOfBirth)
	values[catalog.FieldHireDate] = FormatDate(e.HireDate)
	values[catalog.FieldEmploymentType] = e.EmploymentType

	currency := e.Currency
	if currency == "" && c != nil {
		currency = c.Currency
	}
	values[catalog.FieldSalary] = FormatAmount(e.Salary)
	values[catalog.FieldCurrency] = currency

	// Totals are recomputed from their parts; a stored total may be stale.
	allowances := sum(e.HousingAllowance, e.TransportAllowance, e.OtherAllowance)
	pkg := sum(e.BasicSalary) + allowances

	values[catalog.FieldBasicSalary] = FormatMoney(e.BasicSalary)
	values[catalog.FieldHousingAllowance] = FormatMoney(e.HousingAllowance)
	values[catalog.FieldTransportAllowance] = FormatMoney(e.TransportAllowance)
	values[catalog.FieldOtherAllowance] = FormatMoney(e.OtherAllowance)
	values[catalog.FieldTotalAllowances] = FormatMoney(&allowances)
	values[catalog.FieldTotalPackage] = FormatMoney(&pkg)
}

func positionFields(values map[string]string, p *domain.Position) {
	if p == nil {
		p = &domain.Position{}
	}
	values[catalog.FieldJobTitle] = p.Title
	values[catalog.FieldPositionCode] = p.Code
	values[catalog.FieldPositionGrade] = p.Grade
}

func departmentFields(values map[string]string, d *domain.Department) {
	if d == nil {
		d = &domain.Department{}
	}
	values[catalog.FieldDepartmentName] = d.Name
	values[catalog.FieldDepartmentCode] = d.Code
}

func workLocationFields(values map[string]string, w *domain.WorkLocation) {
	if w == nil {
		w = &domain.WorkLocation{}
	}
	values[catalog.FieldWorkLocationName] = w.Name
	values[catalog.FieldWorkLocationAddress] = w.Address
}

func managerFields(values map[string]string, m *domain.Employee) {
	if m == nil {
		m = &domain.Employee{}
	}
	values[catalog.FieldManagerName] = m.Name()
	values[catalog.FieldManagerEmail] = m.Email
}

func (r *Resolver) companyFields(values map[string]string, c *domain.Company) {
	if c == nil {
		c = &domain.Company{}
	}
	values[catalog.FieldCompanyName] = c.Name
	values[catalog.FieldCompanyLegalName] = c.LegalName
	values[catalog.FieldCompanyAddress] = JoinAddress(c.Street, c.City, c.State, c.Zip, c.Country)
	values[catalog.FieldCompanyPhone] = c.Phone
	values[catalog.FieldCompanyEmail] = c.Email
	values[catalog.FieldCompanyWebsite] = c.Website
	values[catalog.FieldCompanyRegistration] = c.RegistrationNumber
	values[catalog.FieldCompanyLogo] = r.logoImage(c)
	values[catalog.FieldSignatoryName] = c.SignatoryName
	values[catalog.FieldSignatoryTitle] = c.SignatoryTitle
}

// logoImage expands to an inline image, or nothing when no logo is set.
func (r *Resolver) logoImage(c *domain.Company) string {
	url := strings.TrimSpace(c.LogoURL)
	if url == "" {
		return ""
	}
	alt := strings.TrimSpace(c.Name + " logo")
	return fmt.Sprintf(`<img src="%s" alt="%s" style="max-height: %dpx;">`,
		html.EscapeString(url), html.EscapeString(alt), r.logoMaxHeight)
}

func (r *Resolver) systemFields(values map[string]string, data domain.RenderData) {
	now := r.now()

	days := r.expiryDays
	if data.ExpiryDays != nil && *data.ExpiryDays > 0 {
		days = *data.ExpiryDays
	}

	endDate := data.EndDate
	if endDate == nil && data.Employee != nil {
		endDate = data.Employee.EndDate
	}

	values[catalog.FieldCurrentDate] = now.Format(DateLayout)
	values[catalog.FieldCurrentYear] = strconv.Itoa(now.Year())
	values[catalog.FieldOfferExpiryDate] = now.AddDate(0, 0, days).Format(DateLayout)
	values[catalog.FieldEndDate] = FormatEndDate(endDate)
}
