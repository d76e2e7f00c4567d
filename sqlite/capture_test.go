package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newCapture(source, name string, at time.Time) *propcap.Capture {
	capture := propcap.NewCapture(source, at)
	if name != "" {
		capture.Property.Name = &name
	}
	return capture
}

func TestCaptureService_SaveCapture(t *testing.T) {
	t.Parallel()

	t.Run("saves capture with generated ID and hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		ctx := context.Background()

		saved, err := svc.SaveCapture(ctx, newCapture("https://example.com/hotel", "Hotel Aurora", time.Now()))
		require.NoError(t, err)

		assert.NotEmpty(t, saved.ID)
		assert.NotEmpty(t, saved.ContentHash)
		assert.NotEmpty(t, saved.SavedAt)
		assert.Equal(t, "https://example.com/hotel", saved.Source)
	})

	t.Run("rejects a duplicate of unchanged content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.SaveCapture(ctx, newCapture("https://example.com/hotel", "Hotel Aurora", time.Now()))
		require.NoError(t, err)

		// Same extracted content captured later still collides.
		_, err = svc.SaveCapture(ctx, newCapture("https://example.com/hotel", "Hotel Aurora", time.Now().Add(time.Hour)))
		require.Error(t, err)
		assert.Equal(t, propcap.ECONFLICT, propcap.ErrorCode(err))
	})

	t.Run("accepts changed content for the same source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.SaveCapture(ctx, newCapture("https://example.com/hotel", "Hotel Aurora", time.Now()))
		require.NoError(t, err)

		_, err = svc.SaveCapture(ctx, newCapture("https://example.com/hotel", "Hotel Aurora Renamed", time.Now()))
		require.NoError(t, err)
	})

	t.Run("rejects nil capture", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		_, err := svc.SaveCapture(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, propcap.EINVALID, propcap.ErrorCode(err))
	})
}

func TestCaptureService_FindCaptures(t *testing.T) {
	t.Parallel()

	t.Run("filters by id and source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		ctx := context.Background()

		saved1, err := svc.SaveCapture(ctx, newCapture("https://example.com/a", "Hotel A", time.Now()))
		require.NoError(t, err)
		_, err = svc.SaveCapture(ctx, newCapture("https://example.com/b", "Hotel B", time.Now()))
		require.NoError(t, err)

		byID, err := svc.FindCaptures(ctx, propcap.CaptureFilter{ID: &saved1.ID})
		require.NoError(t, err)
		require.Len(t, byID, 1)
		assert.Equal(t, saved1.ID, byID[0].ID)
		require.NotNil(t, byID[0].Capture.Property.Name)
		assert.Equal(t, "Hotel A", *byID[0].Capture.Property.Name)

		source := "https://example.com/b"
		bySource, err := svc.FindCaptures(ctx, propcap.CaptureFilter{Source: &source})
		require.NoError(t, err)
		require.Len(t, bySource, 1)
		assert.Equal(t, source, bySource[0].Source)
	})

	t.Run("returns newest first with limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		ctx := context.Background()

		for i, name := range []string{"One", "Two", "Three"} {
			_, err := svc.SaveCapture(ctx, newCapture("https://example.com/hotel", name, time.Unix(int64(1000+i), 0)))
			require.NoError(t, err)
		}

		all, err := svc.FindCaptures(ctx, propcap.CaptureFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)

		page, err := svc.FindCaptures(ctx, propcap.CaptureFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, page, 2)
	})

	t.Run("returns empty result for unknown id", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCaptureService(setupTestDB(t))
		id := "missing"
		got, err := svc.FindCaptures(context.Background(), propcap.CaptureFilter{ID: &id})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
