package pgtest

import (
	"context"
	"os"

	"github.com/stretchr/testify/suite"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	postgresdb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/postgres"
	"github.com/vulpemventures/coinpurse/test/testutil"
)

const pgTestEnv = "COINPURSE_TEST_PG"

var (
	ctx = context.Background()

	pgRepoManager ports.RepoManager
)

type PgDbTestSuite struct {
	suite.Suite
}

func (p *PgDbTestSuite) SetupSuite() {
	if len(os.Getenv(pgTestEnv)) <= 0 {
		p.T().Skipf("set %s to run postgres tests", pgTestEnv)
	}

	pg, err := postgresdb.NewRepoManager(postgresdb.DbConfig{
		DbUser:     "root",
		DbPassword: "secret",
		DbHost:     "127.0.0.1",
		DbPort:     5432,
		DbName:     "coinpursed-db-test",
		MigrationSourceURL: "file://../../.." +
			"/internal/infrastructure/storage/db/postgres/migration",
	})
	if err != nil {
		p.FailNow(err.Error())
	}

	pgRepoManager = pg
	pgRepoManager.Reset()
	testutil.RegisterHandlers(p.T(), pgRepoManager, "postgres")
}

func (p *PgDbTestSuite) TearDownSuite() {
	if pgRepoManager == nil {
		return
	}
	pgRepoManager.Reset()
	pgRepoManager.Close()
}

func (p *PgDbTestSuite) AfterTest(suiteName, testName string) {
	pgRepoManager.Reset()
}
