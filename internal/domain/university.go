package domain

// University is reference directory data. PK: university_id.
// The verify service only reads it — the directory is populated out of band.
type University struct {
	UniversityID string   `json:"university_id" dynamodbav:"university_id"`
	Name         string   `json:"name" dynamodbav:"name"`
	Domains      []string `json:"domains" dynamodbav:"domains"` // lower-cased email domains
}

// HasDomain reports whether the given (already lower-cased) email domain
// belongs to this university.
func (u *University) HasDomain(domain string) bool {
	for _, d := range u.Domains {
		if d == domain {
			return true
		}
	}
	return false
}
