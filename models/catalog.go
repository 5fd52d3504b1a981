package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dentist is the practitioner profile shown on the About page.
type Dentist struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Title           string             `json:"title,omitempty" bson:"title"`
	Bio             string             `json:"bio,omitempty" bson:"bio"`
	ExperienceYears int                `json:"experienceYears" bson:"experienceYears"`
	Philosophy      string             `json:"philosophy,omitempty" bson:"philosophy"`
	Image           string             `json:"image,omitempty" bson:"image"`
	// Certifications holds one entry per line; CertificationsList is the
	// derived split form sent to clients.
	Certifications     string    `json:"certifications,omitempty" bson:"certifications"`
	CertificationsList []string  `json:"certificationsList" bson:"-"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SplitCertifications fills CertificationsList from the raw text.
func (d *Dentist) SplitCertifications() {
	d.CertificationsList = splitLines(d.Certifications)
}

// Service is a catalog entry for a dental service offered by the clinic.
type Service struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name                string             `json:"name" bson:"name"`
	Slug                string             `json:"slug" bson:"slug"`
	ShortDescription    string             `json:"shortDescription,omitempty" bson:"shortDescription"`
	Description         string             `json:"description,omitempty" bson:"description"`
	Benefits            string             `json:"benefits,omitempty" bson:"benefits"`
	BenefitsList        []string           `json:"benefitsList" bson:"-"`
	ExperienceHighlight string             `json:"experienceHighlight,omitempty" bson:"experienceHighlight"`
	Icon                string             `json:"icon,omitempty" bson:"icon"`
	Order               int                `json:"order" bson:"order"`
	IsActive            bool               `json:"-" bson:"isActive"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SplitBenefits fills BenefitsList from the raw one-per-line text.
func (s *Service) SplitBenefits() {
	s.BenefitsList = splitLines(s.Benefits)
}

func splitLines(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
