// SAGE - Secure Agent Guarantee Engine
// Copyright (C) 2025 SAGE-X-project
//
// This file is part of SAGE.
//
// SAGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SAGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with SAGE. If not, see <https://www.gnu.org/licenses/>.

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/worldcoin/idkit-go/storage"
)

// newTestStore connects using the TEST_POSTGRES_* environment variables and
// migrates the audit schema. It skips the test when no database is
// configured, since these are integration tests against a real Postgres
// instance, not unit tests.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	host := os.Getenv("TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("set TEST_POSTGRES_HOST (and related TEST_POSTGRES_* vars) to run postgres integration tests")
	}

	cfg := &Config{
		Host:     host,
		Port:     5432,
		User:     os.Getenv("TEST_POSTGRES_USER"),
		Password: os.Getenv("TEST_POSTGRES_PASSWORD"),
		Database: os.Getenv("TEST_POSTGRES_DATABASE"),
		SSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewStore(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))

	t.Cleanup(func() { store.Close() })
	return store
}

func TestAuditStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &storage.AuditRecord{
		RequestID: "req-audit-1",
		AppID:     "app_test",
		Action:    "verify-login",
		Status:    "waiting_for_connection",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	require.NoError(t, store.Create(ctx, record))

	got, err := store.Get(ctx, record.RequestID)
	require.NoError(t, err)
	require.Equal(t, record.AppID, got.AppID)
	require.Equal(t, record.Status, got.Status)
	require.Nil(t, got.TerminalAt)

	terminalAt := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, store.UpdateStatus(ctx, record.RequestID, "confirmed", "", &terminalAt))

	got, err = store.Get(ctx, record.RequestID)
	require.NoError(t, err)
	require.Equal(t, "confirmed", got.Status)
	require.NotNil(t, got.TerminalAt)
}

func TestAuditStoreUpdateStatusUnknownRequestErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateStatus(ctx, "does-not-exist", "confirmed", "", nil)
	require.Error(t, err)
}

func TestAuditStoreListOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, id := range []string{"req-list-1", "req-list-2", "req-list-3"} {
		require.NoError(t, store.Create(ctx, &storage.AuditRecord{
			RequestID: id,
			AppID:     "app_list_test",
			Action:    "verify-login",
			Status:    "waiting_for_connection",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := store.List(ctx, "app_list_test", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "req-list-3", records[0].RequestID)
	require.Equal(t, "req-list-1", records[2].RequestID)
}
