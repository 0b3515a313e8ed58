package entity

import "strings"

// Credential is the login pair for the timecard service.
type Credential struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// MaskedEmail keeps the first character of the local part and the domain.
func (c Credential) MaskedEmail() string {
	if c.Email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(c.Email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
