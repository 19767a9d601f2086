package repository

import (
	"context"
	"testing"

	"gather/internal/geo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock. The sqlite-backed
// tests cannot exercise the geo predicate because it leans on postgres math
// functions, so these tests assert the generated SQL instead.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func torontoFilter() geo.Filter {
	return geo.Filter{
		Center:   geo.Point{Latitude: 43.6532, Longitude: -79.3832},
		RadiusKm: 2,
	}
}

func TestActivePostListVisibleEmitsHaversine(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewActivePostRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "active_posts" WHERE privacy = .+acos\(LEAST`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM "active_posts" WHERE privacy = .+acos\(LEAST.+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.ListVisible(context.Background(), VisibleQuery{
		Geo:   torontoFilter(),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivePostListVisibleOwnerBranchSkipsGeo(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewActivePostRepository(gormDB)

	// The owner branch (user_id = viewer) must appear without a distance
	// clause attached, OR-ed with the radius-bounded public branch.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "active_posts" WHERE \(user_id = .+ OR \(privacy = .+acos\(LEAST`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM "active_posts" WHERE \(user_id = .+ OR \(privacy = .+acos\(LEAST`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.ListVisible(context.Background(), VisibleQuery{
		ViewerID: 7,
		Geo:      torontoFilter(),
		Limit:    10,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivePostListVisibleZeroFilterMatchesAll(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewActivePostRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "active_posts" WHERE privacy = .+1 = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM "active_posts" WHERE privacy = .+1 = 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.ListVisible(context.Background(), VisibleQuery{Limit: 10})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
