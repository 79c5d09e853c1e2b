package mysql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyvision-web/internal/config"
	"joyvision-web/internal/storage"
)

var testStorage *Storage

// Интеграционные тесты журнала идут только с тестовой БД:
// JOURNAL_TEST_DSN="root:@tcp(mysql-8.0:3306)/test_journal?parseTime=true"
func TestMain(m *testing.M) {
	if dsn := os.Getenv("JOURNAL_TEST_DSN"); dsn != "" {
		s, err := New(config.Journal{DSN: dsn})
		if err != nil {
			panic(err)
		}
		testStorage = s
	}

	code := m.Run()

	if testStorage != nil {
		testStorage.Close()
	}

	os.Exit(code)
}

func TestJournal_RecordAndRecent(t *testing.T) {
	if testStorage == nil {
		t.Skip("JOURNAL_TEST_DSN is not set")
	}

	ctx := context.Background()
	orderID := int(time.Now().UnixNano() % 1_000_000_000)

	for i, action := range []string{storage.ActionAddSystem, storage.ActionBitrixSync} {
		err := testStorage.Record(ctx, storage.JournalEntry{
			OrderID:   orderID,
			Action:    action,
			Success:   i == 0,
			Message:   action,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	entries, err := testStorage.Recent(ctx, orderID, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, storage.ActionBitrixSync, entries[0].Action)
	assert.False(t, entries[0].Success)
	assert.Equal(t, storage.ActionAddSystem, entries[1].Action)
	assert.True(t, entries[1].Success)
}
