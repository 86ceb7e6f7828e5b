package models

import "time"

// WebsiteSettings holds a tenant's white-label branding configuration.
type WebsiteSettings struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	BrandName    string    `json:"brand_name"   validate:"required"`
	Slug         string    `json:"slug"         validate:"required"`
	LogoURL      string    `json:"logo_url,omitempty"`
	SupportEmail string    `json:"support_email,omitempty"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Connection is a stored OAuth connection to a third-party provider.
type Connection struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Provider    string    `json:"provider"` // slack, facebook, hubspot, ...
	ExternalID  string    `json:"external_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
