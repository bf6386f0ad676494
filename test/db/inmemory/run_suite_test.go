package inmemorytest

import (
	"testing"

	"github.com/stretchr/testify/suite"
	dbtest "github.com/vulpemventures/coinpurse/test/db"
)

func TestInMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryDbTestSuite))
}

func (i *InMemoryDbTestSuite) TestWalletRepository() {
	dbtest.TestWalletRepository(
		i.T(), ctx, inMemoryRepoManager.WalletRepository(),
	)
}

func (i *InMemoryDbTestSuite) TestHistoryRepository() {
	dbtest.TestHistoryRepository(
		i.T(), ctx, inMemoryRepoManager.HistoryRepository(),
	)
}
