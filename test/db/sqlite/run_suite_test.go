package sqlitetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	sqlitedb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/sqlite"
	dbtest "github.com/vulpemventures/coinpurse/test/db"
)

func TestSqliteTestSuite(t *testing.T) {
	suite.Run(t, new(SqliteDbTestSuite))
}

func (s *SqliteDbTestSuite) TestWalletRepository() {
	dbtest.TestWalletRepository(
		s.T(), ctx, sqliteRepoManager.WalletRepository(),
	)
}

func (s *SqliteDbTestSuite) TestHistoryRepository() {
	dbtest.TestHistoryRepository(
		s.T(), ctx, sqliteRepoManager.HistoryRepository(),
	)
}

func TestSqlitePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "coinpurse.db")

	rm, err := sqlitedb.NewRepoManager(dbPath)
	require.NoError(t, err)

	wallet, err := domain.NewWallet("JP")
	require.NoError(t, err)
	require.NoError(t, wallet.AddCoins(500, 1))
	require.NoError(t, rm.WalletRepository().CreateWallet(ctx, wallet))
	rm.Close()

	// Migrations are idempotent on an existing db.
	rm, err = sqlitedb.NewRepoManager(dbPath)
	require.NoError(t, err)
	defer rm.Close()

	wallet, err = rm.WalletRepository().GetWallet(ctx, "JP")
	require.NoError(t, err)
	require.Equal(t, int64(500), wallet.Balance())

	rm.Reset()
	_, err = rm.WalletRepository().GetWallet(ctx, "JP")
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}
