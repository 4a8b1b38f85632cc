package ingest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-availability/config"
	"hotel-availability/internal/availability"
	"hotel-availability/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSources(t *testing.T, hotels, bookings string) *config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.DataConfig{
		Hotels:   filepath.Join(dir, "hotels.json"),
		Bookings: filepath.Join(dir, "bookings.json"),
	}
	require.NoError(t, os.WriteFile(cfg.Hotels, []byte(hotels), 0o600))
	require.NoError(t, os.WriteFile(cfg.Bookings, []byte(bookings), 0o600))
	return cfg
}

func TestService_SyncOnce(t *testing.T) {
	ctx := context.Background()
	cfg := writeSources(t, hotelsJSON, bookingsJSON)
	st := store.NewMemoryStore()
	svc := NewService(cfg, st, discardLogger())

	refreshed := 0
	svc.OnRefresh(func() { refreshed++ })

	require.NoError(t, svc.SyncOnce(ctx))
	assert.Equal(t, 1, refreshed)

	inv, err := st.Inventory(ctx, "H1")
	require.NoError(t, err)
	assert.Equal(t, []string{"201", "202"}, inv.Rooms["DBL"])
	assert.True(t, inv.AllowsOverbooking("DBL"))

	day := func(s string) time.Time { d, _ := time.Parse(availability.DateLayout, s); return d }
	bookings, err := st.Bookings(ctx, availability.BookingQuery{HotelID: "H1", RoomType: "DBL", Start: day("20240901"), End: day("20240901")})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestService_SyncOnceFailureKeepsPreviousData(t *testing.T) {
	ctx := context.Background()
	cfg := writeSources(t, hotelsJSON, bookingsJSON)
	st := store.NewMemoryStore()
	svc := NewService(cfg, st, discardLogger())
	require.NoError(t, svc.SyncOnce(ctx))

	refreshed := 0
	svc.OnRefresh(func() { refreshed++ })

	require.NoError(t, os.WriteFile(cfg.Bookings, []byte(`[{"arrival":"not a date"}]`), 0o600))
	assert.Error(t, svc.SyncOnce(ctx))

	require.NoError(t, os.Remove(cfg.Hotels))
	assert.ErrorIs(t, svc.SyncOnce(ctx), ErrSourceNotFound)

	assert.Zero(t, refreshed)
	_, err := st.Inventory(ctx, "H1")
	assert.NoError(t, err)
}

func TestService_RunRefreshesOnInterval(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/hotels.json" {
			io.WriteString(w, hotelsJSON)
			return
		}
		io.WriteString(w, bookingsJSON)
	}))
	defer server.Close()

	cfg := &config.DataConfig{
		Hotels:          server.URL + "/hotels.json",
		Bookings:        server.URL + "/bookings.json",
		RefreshInterval: 10 * time.Millisecond,
	}
	svc := NewService(cfg, store.NewMemoryStore(), discardLogger())

	var refreshed atomic.Int32
	svc.OnRefresh(func() { refreshed.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refreshed.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, hits.Load(), int32(4))
}

func TestService_RunDisabled(t *testing.T) {
	svc := NewService(&config.DataConfig{}, store.NewMemoryStore(), discardLogger())

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately without an interval")
	}
}
