package badgertest

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	dbbadger "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/badger"
	"github.com/vulpemventures/coinpurse/test/testutil"
)

var (
	ctx = context.Background()

	badgerRepoManager ports.RepoManager
)

type BadgerDbTestSuite struct {
	suite.Suite
}

func (b *BadgerDbTestSuite) BeforeTest(suiteName, testName string) {
	rm, err := dbbadger.NewRepoManager("", nil)
	if err != nil {
		b.FailNow(err.Error())
	}
	badgerRepoManager = rm
	testutil.RegisterHandlers(b.T(), badgerRepoManager, "badger")
}

func (b *BadgerDbTestSuite) AfterTest(suiteName, testName string) {
	badgerRepoManager.Close()
}
