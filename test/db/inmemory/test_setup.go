package inmemorytest

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/inmemory"
	"github.com/vulpemventures/coinpurse/test/testutil"
)

var (
	ctx = context.Background()

	inMemoryRepoManager ports.RepoManager
)

type InMemoryDbTestSuite struct {
	suite.Suite
}

func (i *InMemoryDbTestSuite) BeforeTest(suiteName, testName string) {
	inMemoryRepoManager = inmemory.NewRepoManager()
	testutil.RegisterHandlers(i.T(), inMemoryRepoManager, "inmemory")
}

func (i *InMemoryDbTestSuite) AfterTest(suiteName, testName string) {
	inMemoryRepoManager.Close()
}
