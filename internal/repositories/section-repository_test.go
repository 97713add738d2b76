package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checksheet-system/internal/dto"
	"checksheet-system/migrations"
	"checksheet-system/pkg/database/postgresql"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

var (
	testPoolOnce sync.Once
	testPool     *pgxpool.Pool
	testPoolErr  error
)

// testDB connects to the database named by TEST_DATABASE_URL, applying
// the embedded migrations once. Tests are skipped when the variable is
// not set so the suite stays runnable without a local Postgres.
func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	testPoolOnce.Do(func() {
		if testPoolErr = postgresql.Migrate(dsn, migrations.FS); testPoolErr != nil {
			return
		}
		testPool, testPoolErr = pgxpool.New(context.Background(), dsn)
	})
	require.NoError(t, testPoolErr)
	return testPool
}

func cleanupSections(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE sections RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func listFilter(page, limit int) types.Filter {
	return types.Filter{
		Sort:           map[string]string{},
		Filter:         map[string]interface{}{},
		Page:           page,
		Limit:          limit,
		Offset:         (page - 1) * limit,
		WithPagination: true,
	}
}

func TestSectionRepositoryLifecycle(t *testing.T) {
	pool := testDB(t)
	cleanupSections(t, pool)
	repo := NewSectionRepository(pool)
	ctx := context.Background()

	created, err := repo.CreateSection(ctx, dto.CreateSectionDTO{
		SectionCode: "SEC-MACH",
		Name:        "Machining",
		Description: "CNC line",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "SEC-MACH", created.SectionCode)

	found, err := repo.FindSection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "CNC line", found.Description)

	newName := "Machining line A"
	updated, err := repo.UpdateSection(ctx, created.ID, dto.UpdateSectionDTO{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "SEC-MACH", updated.SectionCode, "untouched fields survive a partial update")

	_, err = repo.CreateSection(ctx, dto.CreateSectionDTO{SectionCode: "SEC-MACH", Name: "Duplicate"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, repo.DeleteSection(ctx, created.ID))

	_, err = repo.FindSection(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "soft-deleted rows are invisible")

	err = repo.DeleteSection(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "second delete finds nothing")
}

func TestSectionRepositoryListPagination(t *testing.T) {
	pool := testDB(t)
	cleanupSections(t, pool)
	repo := NewSectionRepository(pool)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		_, err := repo.CreateSection(ctx, dto.CreateSectionDTO{
			SectionCode: fmt.Sprintf("SEC-%02d", i),
			Name:        fmt.Sprintf("Section %02d", i),
		})
		require.NoError(t, err)
	}

	// Sorting on the unique code keeps the page split deterministic.
	first := listFilter(1, 10)
	first.Sort["section_code"] = "asc"
	page1, total, err := repo.GetSections(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), total)
	assert.Len(t, page1, 10)

	second := listFilter(2, 10)
	second.Sort["section_code"] = "asc"
	page2, total, err := repo.GetSections(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), total)
	assert.Len(t, page2, 5)

	for _, s := range page1 {
		for _, s2 := range page2 {
			assert.NotEqual(t, s.ID, s2.ID, "pages must not overlap")
		}
	}
}

func TestSectionRepositorySearch(t *testing.T) {
	pool := testDB(t)
	cleanupSections(t, pool)
	repo := NewSectionRepository(pool)
	ctx := context.Background()

	_, err := repo.CreateSection(ctx, dto.CreateSectionDTO{SectionCode: "SEC-QC", Name: "Quality Control"})
	require.NoError(t, err)
	_, err = repo.CreateSection(ctx, dto.CreateSectionDTO{SectionCode: "SEC-ASSY", Name: "Assembly"})
	require.NoError(t, err)

	filter := listFilter(1, 10)
	filter.Search = "quality"

	rows, total, err := repo.GetSections(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "SEC-QC", rows[0].SectionCode)
}
