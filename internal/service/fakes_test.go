package service

import (
	"context"
	"time"

	"github.com/empleora/recruiting/internal/domain"
)

// In-memory store fakes backing the service tests.

type memOffers struct {
	offers map[int64]domain.Offer
}

func newMemOffers(offers ...domain.Offer) *memOffers {
	m := &memOffers{offers: make(map[int64]domain.Offer)}
	for _, o := range offers {
		m.offers[o.ID] = o
	}
	return m
}

func (m *memOffers) FindByID(_ context.Context, id int64) (*domain.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

type memApps struct {
	nextID int64
	apps   map[int64]domain.Application
}

func newMemApps(apps ...domain.Application) *memApps {
	m := &memApps{apps: make(map[int64]domain.Application)}
	for _, a := range apps {
		m.apps[a.ID] = a
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	return m
}

func (m *memApps) FindByID(_ context.Context, id int64) (*domain.Application, error) {
	a, ok := m.apps[id]
	if !ok || !a.Active {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memApps) ListByOffer(_ context.Context, offerID int64) ([]domain.Application, error) {
	var out []domain.Application
	for i := int64(1); i <= m.nextID; i++ {
		if a, ok := m.apps[i]; ok && a.Active && a.OfferID == offerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApps) ListByAspirant(_ context.Context, aspirantID int64) ([]domain.Application, error) {
	var out []domain.Application
	for i := int64(1); i <= m.nextID; i++ {
		if a, ok := m.apps[i]; ok && a.Active && a.AspirantID == aspirantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApps) Insert(_ context.Context, aspirantID, offerID int64) (*domain.Application, error) {
	// Mirrors the partial unique index on (aspirant_id, offer_id) WHERE active.
	for _, a := range m.apps {
		if a.Active && a.AspirantID == aspirantID && a.OfferID == offerID {
			return nil, domain.ErrConflict
		}
	}
	m.nextID++
	app := domain.Application{
		ID:         m.nextID,
		AspirantID: aspirantID,
		OfferID:    offerID,
		Status:     domain.ApplicationStatusPending,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.apps[app.ID] = app
	return &app, nil
}

func (m *memApps) UpdateStatusFrom(_ context.Context, id int64, from, to domain.ApplicationStatus) (bool, error) {
	a, ok := m.apps[id]
	if !ok || !a.Active || a.Status != from {
		return false, nil
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	m.apps[id] = a
	return true, nil
}

func (m *memApps) SoftDelete(_ context.Context, id int64) error {
	a, ok := m.apps[id]
	if !ok || !a.Active {
		return domain.ErrNotFound
	}
	a.Active = false
	m.apps[id] = a
	return nil
}

type memCitations struct {
	nextID    int64
	citations map[int64]domain.Citation
}

func newMemCitations(citations ...domain.Citation) *memCitations {
	m := &memCitations{citations: make(map[int64]domain.Citation)}
	for _, c := range citations {
		m.citations[c.ID] = c
		if c.ID > m.nextID {
			m.nextID = c.ID
		}
	}
	return m
}

func (m *memCitations) FindByID(_ context.Context, id int64) (*domain.Citation, error) {
	c, ok := m.citations[id]
	if !ok || !c.Active {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memCitations) ListByApplication(_ context.Context, applicationID int64) ([]domain.Citation, error) {
	var out []domain.Citation
	for i := int64(1); i <= m.nextID; i++ {
		if c, ok := m.citations[i]; ok && c.Active && c.ApplicationID == applicationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCitations) Insert(_ context.Context, cit domain.Citation) (*domain.Citation, error) {
	m.nextID++
	cit.ID = m.nextID
	cit.Status = domain.CitationStatusPending
	cit.MessageSent = false
	cit.Active = true
	cit.CreatedAt = time.Now()
	cit.UpdatedAt = time.Now()
	m.citations[cit.ID] = cit
	return &cit, nil
}

func (m *memCitations) UpdateStatus(_ context.Context, id int64, status domain.CitationStatus) error {
	c, ok := m.citations[id]
	if !ok || !c.Active {
		return domain.ErrNotFound
	}
	c.Status = status
	m.citations[id] = c
	return nil
}

func (m *memCitations) MarkSent(_ context.Context, id int64, sentAt time.Time) error {
	c, ok := m.citations[id]
	if !ok || !c.Active {
		return domain.ErrNotFound
	}
	c.MessageSent = true
	c.SentAt = &sentAt
	m.citations[id] = c
	return nil
}

func (m *memCitations) SoftDelete(_ context.Context, id int64) error {
	c, ok := m.citations[id]
	if !ok || !c.Active {
		return domain.ErrNotFound
	}
	c.Active = false
	m.citations[id] = c
	return nil
}

type memProfiles struct {
	profiles map[int64]domain.AspirantProfile
}

func newMemProfiles(profiles ...domain.AspirantProfile) *memProfiles {
	m := &memProfiles{profiles: make(map[int64]domain.AspirantProfile)}
	for _, p := range profiles {
		m.profiles[p.AspirantID] = p
	}
	return m
}

func (m *memProfiles) FindByAspirant(_ context.Context, aspirantID int64) (*domain.AspirantProfile, error) {
	p, ok := m.profiles[aspirantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// emittedNotification records one Emit call on the fake notifier.
type emittedNotification struct {
	Kind       domain.ReceiverKind
	ReceiverID int64
	Type       domain.NotificationType
	Title      string
	Message    string
	Link       *string
}

type fakeNotifier struct {
	emitted []emittedNotification
	failErr error
}

func (f *fakeNotifier) Emit(_ context.Context, kind domain.ReceiverKind, receiverID int64, typ domain.NotificationType, title, message string, link *string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.emitted = append(f.emitted, emittedNotification{
		Kind:       kind,
		ReceiverID: receiverID,
		Type:       typ,
		Title:      title,
		Message:    message,
		Link:       link,
	})
	return nil
}
