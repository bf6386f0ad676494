package badgertest

import (
	"testing"

	"github.com/stretchr/testify/suite"
	dbtest "github.com/vulpemventures/coinpurse/test/db"
)

func TestBadgerTestSuite(t *testing.T) {
	suite.Run(t, new(BadgerDbTestSuite))
}

func (b *BadgerDbTestSuite) TestWalletRepository() {
	dbtest.TestWalletRepository(
		b.T(), ctx, badgerRepoManager.WalletRepository(),
	)
}

func (b *BadgerDbTestSuite) TestHistoryRepository() {
	dbtest.TestHistoryRepository(
		b.T(), ctx, badgerRepoManager.HistoryRepository(),
	)
}
