//go:build integration

package sequence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"drivergate/internal/driver/sequence"
	"drivergate/pkg/testutil/containers"
)

type PostgresIssuerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	issuer   *sequence.Postgres
}

func TestPostgresIssuerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresIssuerSuite))
}

func (s *PostgresIssuerSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.issuer = sequence.NewPostgres(s.postgres.DB)
}

func (s *PostgresIssuerSuite) SetupTest() {
	s.Require().NoError(s.postgres.ResetSequence(context.Background(), "driver_id_seq"))
}

func (s *PostgresIssuerSuite) TestSequentialIssuance() {
	ctx := context.Background()

	first, err := s.issuer.Next(ctx)
	s.Require().NoError(err)
	second, err := s.issuer.Next(ctx)
	s.Require().NoError(err)

	s.Equal("DRV-00001", first)
	s.Equal("DRV-00002", second)
}
