package widget

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"nationwide/internal/models"
)

// LocalReply is a canned answer produced without calling the chat proxy.
type LocalReply struct {
	Rule string
	Text string
	// ShowUniversities opens the university picker next to the reply.
	ShowUniversities bool
}

type rule struct {
	name     string
	keywords []string
	reply    func(kb *models.KnowledgeBase) LocalReply
}

// rules are checked in order; the first keyword hit wins.
var rules = []rule{
	{"universities", []string{"university", "partner", "australia"}, universitiesReply},
	{"admissions", []string{"admission", "apply", "process"}, admissionsReply},
	{"visa", []string{"visa", "immigration", "document"}, visaReply},
	{"contact", []string{"contact", "phone", "email", "address", "office"}, contactReply},
	{"counselling", []string{"free", "counselling", "consult"}, counsellingReply},
	{"certification", []string{"certif", "rcic", "cric"}, certificationReply},
	{"scholarship", []string{"scholarship", "funding", "financial"}, scholarshipReply},
}

// MatchLocal returns the canned answer for text, if any rule applies.
func MatchLocal(kb *models.KnowledgeBase, text string) (LocalReply, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				reply := r.reply(kb)
				reply.Rule = r.name
				return reply, true
			}
		}
	}
	return LocalReply{}, false
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

func universitiesReply(kb *models.KnowledgeBase) LocalReply {
	return LocalReply{
		Text: "**Our Partner Universities**\n\n" + bullets(kb.Partnerships.ProudPartnersWith) +
			"\n\nPick a university to learn more.",
		ShowUniversities: true,
	}
}

func admissionsReply(kb *models.KnowledgeBase) LocalReply {
	var b strings.Builder
	b.WriteString("**Admission Process**\n\n")
	b.WriteString(kb.Admissions.Process)
	b.WriteString("\n\n**Eligibility:**\n")
	b.WriteString(kb.Admissions.Eligibility)
	b.WriteString("\n\n**Intake Periods:**\n")
	b.WriteString(bullets(kb.Admissions.Intakes))
	b.WriteString("\n\n**Services Included:**\n")
	b.WriteString(bullets(kb.Services.Consultation))
	b.WriteString("\n\n**Fee Structure:**\n")
	b.WriteString(bullets([]string{kb.Fees.Counselling, kb.Fees.AdditionalCharges}))
	return LocalReply{Text: b.String()}
}

func visaReply(kb *models.KnowledgeBase) LocalReply {
	return LocalReply{Text: "**Visa & Immigration Services**\n\n**Certified Consultants:**\n" +
		bullets(kb.Partnerships.AssociatedWith) +
		"\n\n**Services Include:**\n" + bullets([]string{
		"Complete visa documentation support",
		"Application filing assistance",
		"Document verification",
		"Pre-departure guidance",
	}) +
		"\n\n**Why Choose Us:**\n" + bullets([]string{
		"Registered immigration consultants",
		"Transparent process",
		"High success rate",
		"End-to-end support",
	})}
}

func contactReply(kb *models.KnowledgeBase) LocalReply {
	var b strings.Builder
	b.WriteString("**Contact Information**")
	writeOffices(&b, kb, true)
	if email := kb.PrimaryEmail(); email != "" {
		b.WriteString("\n\n**Email:** " + email)
	}

	var platforms []string
	for name, active := range kb.Contact.SocialMedia {
		if active && name != "" {
			platforms = append(platforms, capitalize(name))
		}
	}
	if len(platforms) > 0 {
		sort.Strings(platforms)
		b.WriteString("\n\n**Social Media:**\n")
		b.WriteString(bullets(platforms))
	}
	b.WriteString("\n\n**Get your best here!**")
	return LocalReply{Text: b.String()}
}

func counsellingReply(kb *models.KnowledgeBase) LocalReply {
	return LocalReply{Text: "**Free Counselling Service**\n\nYes! We offer **completely free initial counselling** to help you:\n\n" +
		"**Services Include:**\n" + bullets(kb.Services.Consultation) +
		"\n\n**Study Destinations:**\n" + bullets(kb.Services.StudyAbroad) +
		"\n\n**Certifications:**\n" + bullets(kb.Partnerships.AssociatedWith) +
		"\n\nBook your free session today and start your study abroad journey!"}
}

func certificationReply(kb *models.KnowledgeBase) LocalReply {
	return LocalReply{Text: "**Certified Consultants**\n\nYes! Our immigration consultants are fully certified:\n\n" +
		"**Professional Certifications:**\n" + bullets(kb.Partnerships.AssociatedWith) +
		"\n\n**What This Means For You:**\n" + bullets([]string{
		"Legally authorized immigration advice",
		"Up-to-date knowledge of immigration laws",
		"High visa success rates",
		"Professional ethical standards",
		"Government-regulated services",
	}) +
		"\n\nYour immigration process is in safe, certified hands!"}
}

func scholarshipReply(_ *models.KnowledgeBase) LocalReply {
	return LocalReply{Text: "**Scholarship Assistance**\n\nWe provide comprehensive scholarship support:\n\n" +
		"**Services Include:**\n" + bullets([]string{
		"Scholarship eligibility assessment",
		"Application guidance",
		"Document preparation",
		"Deadline management",
		"Follow-up support",
	}) +
		"\n\n**Available For:**\n" + bullets([]string{
		"Australian universities",
		"Canadian institutions",
		"Government scholarships",
		"University-specific awards",
	}) +
		"\n\nLet us help you find the best funding options!"}
}

// writeOffices appends one block per office with its phones and, optionally, its address.
func writeOffices(b *strings.Builder, kb *models.KnowledgeBase, withAddress bool) {
	for _, o := range kb.Contact.Offices {
		b.WriteString("\n\n**" + o.Country + " Office:**")
		if withAddress && o.Address != "" {
			b.WriteString("\nAddress: " + o.Address)
		}
		b.WriteString("\nPhone: " + strings.Join(o.Phone, " / "))
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
