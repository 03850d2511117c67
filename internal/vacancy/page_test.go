package vacancy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/rs/zerolog"
)

type fetchFunc func(ctx context.Context) ([]models.RawJobRecord, error)

func (f fetchFunc) Fetch(ctx context.Context) ([]models.RawJobRecord, error) {
	return f(ctx)
}

func newTestPage(f fetchFunc) *Page {
	return NewPage(f, NewNormalizer(WithIDGenerator(fixedID("gen"))), zerolog.Nop())
}

func TestPageLoadsListings(t *testing.T) {
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		return []models.RawJobRecord{
			{NumericID: "1", Title: strPtr("Backend Engineer"), CompanyName: strPtr("Acme"), CompanyCity: strPtr("Jakarta"), WorkType: strPtr("remote")},
			{NumericID: "2", Title: strPtr("Designer"), CompanyName: strPtr("Beta"), CompanyCity: strPtr("Bandung")},
		}, nil
	})

	page.Mount(context.Background())
	state := page.Wait(context.Background())

	if state.Loading {
		t.Fatalf("expected loading to be false after settle")
	}
	if state.Error != "" {
		t.Fatalf("unexpected error: %q", state.Error)
	}
	if len(state.Listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(state.Listings))
	}

	visible := page.Visible(Filter{Search: "engineer", Location: All, Type: All})
	if len(visible) != 1 || visible[0].ID != "1" {
		t.Fatalf("unexpected visible listings: %+v", visible)
	}

	if _, ok := page.Find("2"); !ok {
		t.Fatalf("expected to find listing 2")
	}
	if _, ok := page.Find("missing"); ok {
		t.Fatalf("unexpected listing for missing id")
	}
}

func TestPageIsEmptyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		<-release
		return []models.RawJobRecord{{NumericID: "1"}}, nil
	})

	page.Mount(context.Background())
	state := page.State()
	if !state.Loading {
		t.Fatalf("expected loading state")
	}
	if len(page.Visible(NewFilter())) != 0 {
		t.Fatalf("expected no visible listings while loading")
	}

	close(release)
	state = page.Wait(context.Background())
	if state.Loading || len(state.Listings) != 1 {
		t.Fatalf("unexpected settled state: %+v", state)
	}
}

func TestPageFailureSetsSingleMessage(t *testing.T) {
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	page.Mount(context.Background())
	state := page.Wait(context.Background())

	if state.Error != LoadFailedMessage {
		t.Fatalf("Error = %q, want %q", state.Error, LoadFailedMessage)
	}
	if len(state.Listings) != 0 {
		t.Fatalf("expected no listings on failure, got %d", len(state.Listings))
	}
	if state.Loading {
		t.Fatalf("expected loading to be false after failure")
	}
}

func TestPageUnmountCancelsFetch(t *testing.T) {
	started := make(chan struct{})
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	page.Mount(context.Background())
	<-started
	page.Unmount()

	state := page.State()
	if state.Error != "" {
		t.Fatalf("cancellation must not set an error, got %q", state.Error)
	}
	if len(state.Listings) != 0 {
		t.Fatalf("expected listings to stay empty, got %d", len(state.Listings))
	}
}

func TestPageDropsLateResponse(t *testing.T) {
	started := make(chan struct{})
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		close(started)
		<-ctx.Done()
		// a transport that ignores cancellation and still answers
		return []models.RawJobRecord{{NumericID: "late"}}, nil
	})

	page.Mount(context.Background())
	<-started
	page.Unmount()

	if got := page.State().Listings; len(got) != 0 {
		t.Fatalf("late response mutated state: %+v", got)
	}
}

func TestPageParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	page.Mount(ctx)
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	page.Unmount()
	state := page.Wait(waitCtx)
	if state.Error != "" || len(state.Listings) != 0 {
		t.Fatalf("unexpected state after parent cancellation: %+v", state)
	}
}

func TestPageMountTwiceFetchesOnce(t *testing.T) {
	calls := 0
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		calls++
		return nil, nil
	})

	page.Mount(context.Background())
	page.Mount(context.Background())
	page.Wait(context.Background())

	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}

func TestPageWaitWithoutMount(t *testing.T) {
	page := newTestPage(func(ctx context.Context) ([]models.RawJobRecord, error) {
		t.Fatalf("fetch must not run without Mount")
		return nil, nil
	})

	state := page.Wait(context.Background())
	if state.Loading || state.Error != "" || state.Listings == nil {
		t.Fatalf("unexpected idle state: %+v", state)
	}
	page.Unmount()
}
