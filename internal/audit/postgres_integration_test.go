//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"drivergate/internal/audit"
	id "drivergate/pkg/domain"
	"drivergate/pkg/platform/tx"
	"drivergate/pkg/testutil/containers"
)

type PostgresAuditSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *audit.PostgresStore
}

func TestPostgresAuditSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAuditSuite))
}

func (s *PostgresAuditSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = audit.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresAuditSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "driver_audit_events"))
}

func (s *PostgresAuditSuite) TestAppendAndListOrdered() {
	ctx := context.Background()
	recordID := id.NewRecordID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	events := []audit.Event{
		{Timestamp: base, RecordID: recordID, Action: audit.ActionDriverRegistered, RequestID: "req-1"},
		{Timestamp: base.Add(time.Second), RecordID: recordID, Action: audit.ActionDriverApproved, DriverID: "DRV-00001"},
		{Timestamp: base.Add(2 * time.Second), RecordID: recordID, Action: audit.ActionBalanceAdjusted, Amount: -25, Reason: "fre sèvis"},
	}
	for _, event := range events {
		s.Require().NoError(s.store.Append(ctx, event))
	}

	got, err := s.store.ListByRecord(ctx, recordID)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(audit.ActionDriverRegistered, got[0].Action)
	s.Equal("req-1", got[0].RequestID)
	s.Equal("DRV-00001", got[1].DriverID)
	s.Equal(-25.0, got[2].Amount)
	s.Equal("fre sèvis", got[2].Reason)
}

// TestAppendJoinsCallerTransaction verifies that an event appended
// inside a caller-owned transaction rolls back with it.
func (s *PostgresAuditSuite) TestAppendJoinsCallerTransaction() {
	ctx := context.Background()
	recordID := id.NewRecordID()

	dbTx, err := s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)

	txCtx := tx.WithTx(ctx, dbTx)
	s.Require().NoError(s.store.Append(txCtx, audit.Event{
		Timestamp: time.Now().UTC(),
		RecordID:  recordID,
		Action:    audit.ActionDriverRegistered,
	}))
	s.Require().NoError(dbTx.Rollback())

	got, err := s.store.ListByRecord(ctx, recordID)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PostgresAuditSuite) TestListScopedToRecord() {
	ctx := context.Background()
	first := id.NewRecordID()
	second := id.NewRecordID()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(ctx, audit.Event{Timestamp: now, RecordID: first, Action: audit.ActionDriverRegistered}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{Timestamp: now, RecordID: second, Action: audit.ActionDriverRegistered}))

	got, err := s.store.ListByRecord(ctx, first)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(first, got[0].RecordID)
}
