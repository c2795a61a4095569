package models

import (
	"errors"
	"fmt"
	"strings"
)

// KnowledgeBase is the institute's static reference document used to ground chat answers.
type KnowledgeBase struct {
	InstituteName string       `json:"instituteName"`
	Tagline       string       `json:"tagline"`
	Partnerships  Partnerships `json:"partnerships"`
	Contact       Contact      `json:"contact"`
	Services      Services     `json:"services"`
	Admissions    Admissions   `json:"admissions"`
	Fees          Fees         `json:"fees"`
	Highlights    []string     `json:"highlights"`
	FAQs          []FAQ        `json:"faqs"`
}

type Partnerships struct {
	ProudPartnersWith []string `json:"proudPartnersWith"`
	AssociatedWith    []string `json:"associatedWith"`
}

type Contact struct {
	Offices     []Office        `json:"offices"`
	Email       string          `json:"email,omitempty"`
	Phone       []string        `json:"phone,omitempty"`
	Website     string          `json:"website,omitempty"`
	SocialMedia map[string]bool `json:"socialMedia,omitempty"`
}

type Office struct {
	Country string   `json:"country"`
	Address string   `json:"address"`
	Phone   []string `json:"phone"`
}

type Services struct {
	StudyAbroad  []string `json:"studyAbroad"`
	Consultation []string `json:"consultation"`
}

type Admissions struct {
	Process     string   `json:"process"`
	Intakes     []string `json:"intakes"`
	Eligibility string   `json:"eligibility"`
}

type Fees struct {
	Counselling       string `json:"counselling"`
	AdditionalCharges string `json:"additionalCharges"`
}

type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// Validate rejects documents the chat proxy cannot use. Optional lists are
// normalised to empty slices so serialisation never emits null.
func (kb *KnowledgeBase) Validate() error {
	if strings.TrimSpace(kb.InstituteName) == "" {
		return fmt.Errorf("%w: instituteName is required", ErrInvalidKnowledgeBase)
	}
	if len(kb.Contact.Offices) == 0 {
		return fmt.Errorf("%w: contact.offices must list at least one office", ErrInvalidKnowledgeBase)
	}
	for i, o := range kb.Contact.Offices {
		if strings.TrimSpace(o.Country) == "" {
			return fmt.Errorf("%w: contact.offices[%d].country is required", ErrInvalidKnowledgeBase, i)
		}
		if len(o.Phone) == 0 {
			return fmt.Errorf("%w: contact.offices[%d].phone must not be empty", ErrInvalidKnowledgeBase, i)
		}
	}
	for i, f := range kb.FAQs {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			return fmt.Errorf("%w: faqs[%d] needs both q and a", ErrInvalidKnowledgeBase, i)
		}
	}

	kb.Partnerships.ProudPartnersWith = orEmpty(kb.Partnerships.ProudPartnersWith)
	kb.Partnerships.AssociatedWith = orEmpty(kb.Partnerships.AssociatedWith)
	kb.Services.StudyAbroad = orEmpty(kb.Services.StudyAbroad)
	kb.Services.Consultation = orEmpty(kb.Services.Consultation)
	kb.Admissions.Intakes = orEmpty(kb.Admissions.Intakes)
	kb.Highlights = orEmpty(kb.Highlights)
	if kb.FAQs == nil {
		kb.FAQs = []FAQ{}
	}
	return nil
}

// AllPhones returns the general numbers followed by every office number, without duplicates.
func (kb *KnowledgeBase) AllPhones() []string {
	seen := make(map[string]bool)
	var phones []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			phones = append(phones, p)
		}
	}
	for _, p := range kb.Contact.Phone {
		add(p)
	}
	for _, o := range kb.Contact.Offices {
		for _, p := range o.Phone {
			add(p)
		}
	}
	return phones
}

// Office finds an office by country, case-insensitively.
func (kb *KnowledgeBase) Office(country string) (Office, bool) {
	for _, o := range kb.Contact.Offices {
		if strings.EqualFold(o.Country, country) {
			return o, true
		}
	}
	return Office{}, false
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// PrimaryEmail returns the general contact address, or "" when none is listed.
func (kb *KnowledgeBase) PrimaryEmail() string {
	return strings.TrimSpace(kb.Contact.Email)
}
