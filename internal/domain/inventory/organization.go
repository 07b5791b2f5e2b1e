package inventory

import "strings"

// Organization identifies which custody organization holds a unit
type Organization string

const (
	OrganizationNova    Organization = "Nova"
	OrganizationMagnova Organization = "Magnova"
)

// IsValid checks if the value is a recognized Organization
func (o Organization) IsValid() bool {
	return o == OrganizationNova || o == OrganizationMagnova
}

// String returns the string representation of Organization
func (o Organization) String() string {
	return string(o)
}

// ParseOrganization normalizes free-form input into an Organization
func ParseOrganization(s string) (Organization, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nova":
		return OrganizationNova, true
	case "magnova":
		return OrganizationMagnova, true
	}
	return "", false
}

// OrganizationFromPurchaseOffice derives the initial custody organization
// from a purchase office name. Offices mentioning Magnova belong to
// Magnova, everything else to Nova.
func OrganizationFromPurchaseOffice(office string) Organization {
	if strings.Contains(strings.ToLower(office), "magnova") {
		return OrganizationMagnova
	}
	return OrganizationNova
}
