package stores

import (
	"context"
	"time"

	"teampulse/internal/models"
)

const (
	displayDateLayout = "2006/01/02"
	wireDateLayout    = "2006-01-02"
)

// EntryStore holds the current user's entries with display-formatted dates.
type EntryStore struct {
	base[models.EntryDetail]
	api EntryAPI
}

func NewEntryStore(client EntryAPI, tenants TenantSource, opts ...Option) *EntryStore {
	s := &EntryStore{api: client}
	s.init("entry", tenants, opts)
	return s
}

// FetchEntries loads the entries and rewrites reported_at as YYYY/MM/DD.
func (s *EntryStore) FetchEntries(ctx context.Context) error {
	tenantID, err := s.tenant(ctx, "fetch")
	if err != nil {
		return err
	}
	s.begin()
	resp, err := s.api.ListEntries(ctx, tenantID)
	if err != nil {
		s.finish(ctx, "fetch", err, "Failed to fetch entries", nil)
		return err
	}
	entries := make([]models.EntryDetail, len(resp.Data))
	for i, e := range resp.Data {
		e.ReportedAt = DisplayDate(e.ReportedAt)
		entries[i] = e
	}
	s.finish(ctx, "fetch", nil, "", entries)
	return nil
}

// AddEntry posts an entry for the date of form.ReportedAt. Unlike the other
// actions it neither toggles loading nor clears a previous error.
func (s *EntryStore) AddEntry(ctx context.Context, form models.EntryForm) (*models.Entry, error) {
	tenantID, err := s.tenant(ctx, "add")
	if err != nil {
		return nil, err
	}
	resp, err := s.api.CreateEntry(ctx, tenantID, Payload(form))
	if err != nil {
		s.logger.DebugContext(ctx, "store action failed", "store", s.name, "action", "add", "error", err)
		s.fail(err, "Failed to add entry")
		return nil, err
	}
	return &resp.Data, nil
}

// Payload converts the form to the wire body, keeping only the calendar date
// of ReportedAt in its own location.
func Payload(form models.EntryForm) models.EntryPayload {
	return models.EntryPayload{
		Team:       form.Team,
		ReportedAt: form.ReportedAt.Format(wireDateLayout),
		Questions:  form.Questions,
		Answers:    form.Answers,
		Comment:    form.Comment,
	}
}

var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	wireDateLayout,
}

// DisplayDate formats a server date as YYYY/MM/DD in the location it was
// written in. Values that do not parse are returned unchanged.
func DisplayDate(value string) string {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return value
}
