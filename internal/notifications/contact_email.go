package notifications

import (
	"bytes"
	"html/template"

	"sfm-backend/internal/contacts"
)

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New project inquiry</h2>
  <ul>
    <li>Name: {{.Name}}</li>
    <li>Email: {{.Email}}</li>
    {{if .Phone}}<li>Phone: {{.Phone}}</li>{{end}}
    {{if .Company}}<li>Company: {{.Company}}</li>{{end}}
    <li>Project type: {{.ProjectTypeLabel}}</li>
    <li>Budget: {{.BudgetLabel}}</li>
    {{if .Timeline}}<li>Timeline: {{.Timeline}}</li>{{end}}
    {{if .PreferredDate}}<li>Preferred date: {{.PreferredDate}}{{if .PreferredTime}} at {{.PreferredTime}}{{end}}</li>{{end}}
    <li>Source: {{.Source}}</li>
  </ul>
  <h3>Message</h3>
  <p>{{.Message}}</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))

type contactNotificationData struct {
	Name             string
	Email            string
	Phone            string
	Company          string
	ProjectTypeLabel string
	BudgetLabel      string
	Timeline         string
	PreferredDate    string
	PreferredTime    string
	Source           string
	Message          string
}

func buildContactNotificationHTML(contact contacts.Contact) (string, error) {
	data := contactNotificationData{
		Name:             contact.Name,
		Email:            contact.Email,
		Phone:            contact.Phone,
		Company:          contact.Company,
		ProjectTypeLabel: projectTypeLabel(contact.ProjectType),
		BudgetLabel:      budgetLabel(contact.Budget),
		Timeline:         contact.Timeline,
		PreferredDate:    contact.PreferredDate,
		PreferredTime:    contact.PreferredTime,
		Source:           contact.Source,
		Message:          contact.Message,
	}
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func projectTypeLabel(value string) string {
	switch value {
	case contacts.ProjectTypeNewWebsite:
		return "New website"
	case contacts.ProjectTypeRedesign:
		return "Redesign"
	case contacts.ProjectTypeEcommerce:
		return "E-commerce"
	case contacts.ProjectTypeSEO:
		return "SEO"
	case contacts.ProjectTypeMaintenance:
		return "Maintenance"
	case contacts.ProjectTypeOther:
		return "Other"
	default:
		return value
	}
}

func budgetLabel(value string) string {
	switch value {
	case contacts.BudgetUnder5k:
		return "Under $5,000"
	case contacts.Budget5kTo10k:
		return "$5,000 - $10,000"
	case contacts.Budget10To25k:
		return "$10,000 - $25,000"
	case contacts.Budget25kPlus:
		return "$25,000+"
	case contacts.BudgetNotSure:
		return "Not sure yet"
	default:
		return value
	}
}
