package vacancy

import (
	"context"
	"errors"
	"sync"

	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/rs/zerolog"
)

// LoadFailedMessage is the only error a page visit ever shows.
const LoadFailedMessage = "Gagal memuat data lowongan. Coba refresh atau cek koneksi."

// Fetcher is satisfied by source.API.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.RawJobRecord, error)
}

// State is the page-scoped view of one visit.
type State struct {
	Loading  bool
	Listings []models.Listing
	Error    string
}

// Page runs the single cancellable fetch of a page visit and holds its
// result. Once Unmount has cancelled the fetch, a late response is dropped.
type Page struct {
	fetcher    Fetcher
	normalizer *Normalizer
	logger     zerolog.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPage(fetcher Fetcher, normalizer *Normalizer, logger zerolog.Logger) *Page {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	return &Page{
		fetcher:    fetcher,
		normalizer: normalizer,
		logger:     logger,
		state:      State{Listings: []models.Listing{}},
	}
}

// Mount starts the fetch. Calling it again on a mounted page does nothing.
func (p *Page) Mount(parent context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.state = State{Loading: true, Listings: []models.Listing{}}

	go p.load(ctx, p.done)
}

func (p *Page) load(ctx context.Context, done chan struct{}) {
	defer close(done)

	records, err := p.fetcher.Fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		p.logger.Debug().Msg("fetch cancelled, result discarded")
		return
	}
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to load listings")
		p.state = State{Listings: []models.Listing{}, Error: LoadFailedMessage}
		return
	}

	p.state = State{Listings: p.normalizer.NormalizeAll(records)}
}

// Unmount cancels an outstanding fetch and waits for it to settle.
func (p *Page) Unmount() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the fetch settles or ctx ends, then returns the state.
func (p *Page) Wait(ctx context.Context) State {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return p.State()
}

func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	state := p.state
	state.Listings = append([]models.Listing(nil), p.state.Listings...)
	if state.Listings == nil {
		state.Listings = []models.Listing{}
	}
	return state
}

// Visible applies f to the loaded listings.
func (p *Page) Visible(f Filter) []models.Listing {
	return f.Apply(p.State().Listings)
}

// Find returns the listing with the given id.
func (p *Page) Find(id string) (models.Listing, bool) {
	for _, listing := range p.State().Listings {
		if listing.ID == id {
			return listing, true
		}
	}
	return models.Listing{}, false
}
