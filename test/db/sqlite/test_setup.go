package sqlitetest

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	sqlitedb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/sqlite"
	"github.com/vulpemventures/coinpurse/test/testutil"
)

var (
	ctx = context.Background()

	sqliteRepoManager ports.RepoManager
)

type SqliteDbTestSuite struct {
	suite.Suite
}

func (s *SqliteDbTestSuite) BeforeTest(suiteName, testName string) {
	rm, err := sqlitedb.NewRepoManager("")
	if err != nil {
		s.FailNow(err.Error())
	}
	sqliteRepoManager = rm
	testutil.RegisterHandlers(s.T(), sqliteRepoManager, "sqlite")
}

func (s *SqliteDbTestSuite) AfterTest(suiteName, testName string) {
	sqliteRepoManager.Close()
}
