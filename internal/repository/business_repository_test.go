package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdmap/crowd-heatmap/internal/database"
	"github.com/crowdmap/crowd-heatmap/internal/models"
)

func newTestRepo(t *testing.T) *BusinessRepository {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.MigrateUp(conn))
	return NewBusinessRepository(conn)
}

func ptr(f float64) *float64 { return &f }

func seed(t *testing.T, repo *BusinessRepository) []*models.BusinessProfile {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profiles := []*models.BusinessProfile{
		{Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001", BusinessType: "Cafe", CrowdIntensity: models.IntensityHigh,
			Latitude: ptr(12.9716), Longitude: ptr(77.5946), CreatedAt: base},
		{Name: "Ben Ortiz", Email: "ben@example.com", Phone: "9000000002", BusinessType: "Bookstore", CrowdIntensity: models.IntensityLow,
			CreatedAt: base.Add(time.Hour)},
		{Name: "Chen Li", Email: "chen@shop.io", Phone: "9000000003", BusinessType: "Gym", CrowdIntensity: models.IntensityMedium,
			CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Dana 100%", Email: "dana@example.com", Phone: "9000000004", BusinessType: "Cafe_Bar", CrowdIntensity: models.IntensityHigh,
			CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, p := range profiles {
		require.NoError(t, repo.Create(context.Background(), p))
		require.NotZero(t, p.ID)
	}
	return profiles
}

func TestBusinessRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	profiles := seed(t, repo)

	got, err := repo.GetByID(context.Background(), profiles[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *profiles[0], *got)

	noLoc, err := repo.GetByID(context.Background(), profiles[1].ID)
	require.NoError(t, err)
	assert.Nil(t, noLoc.Latitude)
	assert.Nil(t, noLoc.Longitude)

	missing, err := repo.GetByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBusinessRepository_CreateSetsTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	p := &models.BusinessProfile{Name: "n", Email: "n@x.io", Phone: "1", BusinessType: "t", CrowdIntensity: models.IntensityLow}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.WithinDuration(t, time.Now(), p.CreatedAt, 5*time.Second)
}

func TestBusinessRepository_List(t *testing.T) {
	repo := newTestRepo(t)
	profiles := seed(t, repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.BusinessProfileFilter
		want   []string
		total  int64
	}{
		{"all newest first", models.BusinessProfileFilter{}, []string{"Dana 100%", "Chen Li", "Ben Ortiz", "Asha Rao"}, 4},
		{"by intensity", models.BusinessProfileFilter{Intensity: "high"}, []string{"Dana 100%", "Asha Rao"}, 2},
		{"search name case-insensitive", models.BusinessProfileFilter{Search: "CHEN"}, []string{"Chen Li"}, 1},
		{"search email", models.BusinessProfileFilter{Search: "shop.io"}, []string{"Chen Li"}, 1},
		{"search business type", models.BusinessProfileFilter{Search: "cafe"}, []string{"Dana 100%", "Asha Rao"}, 2},
		{"wildcards are literal", models.BusinessProfileFilter{Search: "100%"}, []string{"Dana 100%"}, 1},
		{"underscore is literal", models.BusinessProfileFilter{Search: "e_b"}, []string{"Dana 100%"}, 1},
		{"since", models.BusinessProfileFilter{Since: profiles[2].CreatedAt.Unix()}, []string{"Dana 100%", "Chen Li"}, 2},
		{"until", models.BusinessProfileFilter{Until: profiles[0].CreatedAt.Unix()}, []string{"Asha Rao"}, 1},
		{"page two", models.BusinessProfileFilter{Page: 2, PageSize: 3}, []string{"Asha Rao"}, 4},
		{"no match", models.BusinessProfileFilter{Search: "zzz"}, []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			names := []string{}
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestBusinessRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	profiles := seed(t, repo)

	deleted, err := repo.Delete(context.Background(), profiles[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), profiles[1].ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBusinessRepository_CountByIntensity(t *testing.T) {
	repo := newTestRepo(t)

	empty, err := repo.CountByIntensity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.IntensitySummary{}, *empty)

	seed(t, repo)
	summary, err := repo.CountByIntensity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.IntensitySummary{High: 2, Medium: 1, Low: 1, Total: 4}, *summary)
}

func TestBusinessRepository_ListTotalMatchesPageUnderConcurrentInserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	const inserts = 150
	const pageSize = 100

	done := make(chan error, 1)
	go func() {
		for i := 0; i < inserts; i++ {
			p := &models.BusinessProfile{
				Name: "Shop", Email: "shop@example.com", Phone: "1",
				BusinessType: "Cafe", CrowdIntensity: models.IntensityLow,
			}
			if err := repo.Create(ctx, p); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	check := func() {
		profiles, total, err := repo.List(ctx, models.BusinessProfileFilter{Page: 1, PageSize: pageSize})
		require.NoError(t, err)
		want := int(total)
		if want > pageSize {
			want = pageSize
		}
		require.Len(t, profiles, want, "total %d", total)
	}

	for finished := false; !finished; {
		select {
		case err := <-done:
			require.NoError(t, err)
			finished = true
		default:
			check()
		}
	}

	check()
	_, total, err := repo.List(ctx, models.BusinessProfileFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, inserts, total)
}
