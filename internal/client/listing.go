package client

import (
	"context"
	"strings"
	"sync"

	"github.com/ekinura/schoolboard/internal/app/models"
)

// ListingView holds the state of the school listing: the record set
// fetched once on display, a search term, and per-record image fallbacks.
// Filtering is purely in-memory; keystrokes never refetch.
type ListingView struct {
	mu sync.Mutex

	client  *Client
	records []*models.School
	search  string
	broken  map[int64]bool
}

// NewListingView creates a listing view backed by the given API client.
func NewListingView(apiClient *Client) *ListingView {
	return &ListingView{
		client: apiClient,
		broken: make(map[int64]bool),
	}
}

// Load fetches the record set. Call once when the view is first shown.
func (v *ListingView) Load(ctx context.Context) error {
	schools, err := v.client.FetchSchools(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = schools
	return nil
}

// SetSearch updates the search term.
func (v *ListingView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
}

// Search returns the current search term.
func (v *ListingView) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// Visible returns the records whose name, city, or state contains the
// search term as a case-insensitive substring. An empty term returns the
// full fetched set.
func (v *ListingView) Visible() []*models.School {
	v.mu.Lock()
	defer v.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(v.search))
	if term == "" {
		return v.records
	}

	filtered := make([]*models.School, 0, len(v.records))
	for _, school := range v.records {
		if strings.Contains(strings.ToLower(school.Name), term) ||
			strings.Contains(strings.ToLower(school.City), term) ||
			strings.Contains(strings.ToLower(school.State), term) {
			filtered = append(filtered, school)
		}
	}
	return filtered
}

// MarkImageBroken records that a school's image failed to load, so the
// view falls back to a placeholder for that record only.
func (v *ListingView) MarkImageBroken(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.broken[id] = true
}

// ShowPlaceholder reports whether a record renders the placeholder: its
// image is absent or previously failed to load.
func (v *ListingView) ShowPlaceholder(school *models.School) bool {
	if school.Image == nil {
		return true
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.broken[school.ID]
}
