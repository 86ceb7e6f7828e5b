package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// ErrSettingsNotFound is returned when an account has no whitelabel settings yet.
var ErrSettingsNotFound = persistence.ErrSettingsNotFound

// slugCacheTTL bounds how long a slug availability answer may be served
// without hitting the database. Slugs change rarely; a short TTL keeps the
// check cheap while typing without serving stale conflicts for long.
const slugCacheTTL = 10 * time.Second

// Whitelabel manages per-tenant branding settings.
type Whitelabel struct {
	persistence persistence.Persistence
	cache       redis.UniversalClient
}

// NewWhitelabel creates a new whitelabel service. The cache client is
// optional; without it every slug check hits the database.
func NewWhitelabel(persistence persistence.Persistence, cache redis.UniversalClient) *Whitelabel {
	return &Whitelabel{
		persistence: persistence,
		cache:       cache,
	}
}

// Get returns the account's settings.
func (s *Whitelabel) Get(ctx context.Context, accountID string) (*models.WebsiteSettings, error) {
	return s.persistence.WhitelabelRepository().Get(ctx, accountID)
}

// UpdateSettingsRequest carries the editable branding fields. Nil pointers
// leave the stored value untouched.
type UpdateSettingsRequest struct {
	BrandName    *string
	Slug         *string
	LogoURL      *string
	SupportEmail *string
	CustomDomain *string
}

// Update validates and saves branding changes. Brand name and slug must be
// present once settings exist, and the slug must be unique across accounts.
func (s *Whitelabel) Update(ctx context.Context, accountID string, req UpdateSettingsRequest) (*models.WebsiteSettings, error) {
	settings, err := s.persistence.WhitelabelRepository().Get(ctx, accountID)
	if err != nil {
		if !errors.Is(err, persistence.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}

		settings = &models.WebsiteSettings{AccountID: accountID}
	}

	if req.BrandName != nil {
		settings.BrandName = strings.TrimSpace(*req.BrandName)
	}

	if req.Slug != nil {
		settings.Slug = normalizeSlug(*req.Slug)
	}

	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	}

	if req.SupportEmail != nil {
		settings.SupportEmail = *req.SupportEmail
	}

	if req.CustomDomain != nil {
		settings.CustomDomain = *req.CustomDomain
	}

	if settings.BrandName == "" {
		return nil, ErrBrandNameRequired
	}

	if settings.Slug == "" {
		return nil, ErrSlugRequired
	}

	available, err := s.SlugAvailable(ctx, settings.Slug, accountID)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, ErrSlugTaken
	}

	err = s.persistence.WhitelabelRepository().Save(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}

// Activate flips the published flag. Settings must exist and be complete.
func (s *Whitelabel) Activate(ctx context.Context, accountID string, active bool) (*models.WebsiteSettings, error) {
	settings, err := s.persistence.WhitelabelRepository().Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	settings.Active = active

	err = s.persistence.WhitelabelRepository().Save(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}

// SlugAvailable reports whether the slug is free for this account to use.
// Results are cached briefly so per-keystroke checks don't hammer the
// database.
func (s *Whitelabel) SlugAvailable(ctx context.Context, slug, accountID string) (bool, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return false, ErrSlugRequired
	}

	cacheKey := "whitelabel:slug:" + slug + ":" + accountID

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		// Cache misses and cache trouble both fall through to the database.
	}

	taken, err := s.persistence.WhitelabelRepository().SlugTaken(ctx, slug, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	if s.cache != nil {
		value := "1"
		if taken {
			value = "0"
		}

		_ = s.cache.Set(ctx, cacheKey, value, slugCacheTTL).Err()
	}

	return !taken, nil
}

// normalizeSlug lowercases and strips whitespace; slugs are compared
// case-insensitively everywhere.
func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
