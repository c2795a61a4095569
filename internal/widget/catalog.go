package widget

import (
	"fmt"
	"strings"
)

const (
	CategoryAll          = "all"
	CategoryAustralia    = "australia"
	CategoryCanada       = "canada"
	CategoryVisa         = "visa"
	CategoryConsultation = "consultation"
	CategoryUniversities = "universities"
	CategoryContact      = "contact"
)

type Category struct {
	ID   string
	Name string
}

// Categories are the filters offered above the quick actions.
var Categories = []Category{
	{CategoryAll, "All Services"},
	{CategoryAustralia, "Australia"},
	{CategoryCanada, "Canada"},
	{CategoryVisa, "Visa Services"},
	{CategoryConsultation, "Consultation"},
	{CategoryUniversities, "Universities"},
}

// QuickAction is a suggested question sent as if the user had typed it.
type QuickAction struct {
	Label    string
	Query    string
	Category string
}

var quickActions = []QuickAction{
	{"Australian Universities", "Which Australian universities are you partnered with?", CategoryAustralia},
	{"Canada Study", "Tell me about studying in Canada", CategoryCanada},
	{"Visa Assistance", "Do you help with visa filing and documentation?", CategoryVisa},
	{"Free Counselling", "Is the initial counselling really free?", CategoryConsultation},
	{"Contact Info", "What are your contact details for Canada and India offices?", CategoryContact},
	{"Certified Consultants", "Are your immigration consultants certified?", CategoryConsultation},
	{"Admission Process", "What is the admission process for studying abroad?", CategoryConsultation},
	{"Scholarships", "Do you provide scholarship assistance?", CategoryConsultation},
}

// QuickActions returns the actions visible under the given category.
func QuickActions(category string) []QuickAction {
	var out []QuickAction
	for _, qa := range quickActions {
		if category == CategoryAll || category == "" || qa.Category == category {
			out = append(out, qa)
		}
	}
	return out
}

type University struct {
	ID             string
	Name           string
	Country        string
	Ranking        string
	PopularCourses []string
	Category       string
}

var universities = []University{
	{"melbourne", "The University of Melbourne", "Australia", "World Top 50", []string{"Business", "Engineering", "Computer Science"}, CategoryAustralia},
	{"sydney", "The University of Sydney", "Australia", "World Top 100", []string{"Medicine", "Law", "Arts"}, CategoryAustralia},
	{"deakin", "Deakin University", "Australia", "Top 300 globally", []string{"Business", "IT", "Health Sciences"}, CategoryAustralia},
	{"rmit", "RMIT University", "Australia", "QS 5-Star rating", []string{"Design", "Engineering", "Business"}, CategoryAustralia},
	{"uq", "The University of Queensland", "Australia", "World Top 50", []string{"Science", "Engineering", "Business"}, CategoryAustralia},
	{"monash", "Monash University", "Australia", "World Top 100", []string{"Pharmacy", "Engineering", "Business"}, CategoryAustralia},
	{"latrobe", "La Trobe University", "Australia", "Top 400 globally", []string{"Health Sciences", "Business", "IT"}, CategoryAustralia},
}

// Universities returns the partner profiles visible under the given category.
// The universities filter shows every profile.
func Universities(category string) []University {
	var out []University
	for _, u := range universities {
		if category == CategoryAll || category == "" || category == CategoryUniversities || u.Category == category {
			out = append(out, u)
		}
	}
	return out
}

func findUniversity(id string) (University, bool) {
	for _, u := range universities {
		if strings.EqualFold(u.ID, id) {
			return u, true
		}
	}
	return University{}, false
}

func universityMessage(u University) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", u.Name)
	fmt.Fprintf(&b, "**Country:** %s\n", u.Country)
	fmt.Fprintf(&b, "**Ranking:** %s\n\n", u.Ranking)
	fmt.Fprintf(&b, "**Popular Courses:**\n%s\n\n", bullets(u.PopularCourses))
	b.WriteString("**Partnership:** Direct partnership with Nationwide\n")
	b.WriteString("**Support:** Complete application and visa assistance\n\n")
	fmt.Fprintf(&b, "Interested in **%s**? We provide complete support from application to arrival!", u.Name)
	return b.String()
}
