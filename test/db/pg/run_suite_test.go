package pgtest

import (
	"testing"

	"github.com/stretchr/testify/suite"
	dbtest "github.com/vulpemventures/coinpurse/test/db"
)

func TestPgDbTestSuite(t *testing.T) {
	suite.Run(t, new(PgDbTestSuite))
}

func (p *PgDbTestSuite) TestWalletRepository() {
	dbtest.TestWalletRepository(
		p.T(), ctx, pgRepoManager.WalletRepository(),
	)
}

func (p *PgDbTestSuite) TestHistoryRepository() {
	dbtest.TestHistoryRepository(
		p.T(), ctx, pgRepoManager.HistoryRepository(),
	)
}
