package mysql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"joyvision-web/internal/storage"
)

const journalTable = "order_actions"

func (s *Storage) Record(ctx context.Context, entry storage.JournalEntry) error {
	const op = "storage.mysql.Record"

	query, args, err := recordQuery(entry)
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: ошибка записи действия в журнал %w", op, err)
	}

	return nil
}

// Recent возвращает последние записи по заказу, новые первыми.
func (s *Storage) Recent(ctx context.Context, orderID int, limit int) ([]storage.JournalEntry, error) {
	const op = "storage.mysql.Recent"

	query, args, err := recentQuery(orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []storage.JournalEntry
	for rows.Next() {
		var e storage.JournalEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.Success, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func recordQuery(entry storage.JournalEntry) (string, []interface{}, error) {
	return sq.Insert(journalTable).
		Columns("order_id", "action", "success", "message", "created_at").
		Values(entry.OrderID, entry.Action, entry.Success, truncate(entry.Message, 512), entry.CreatedAt).
		ToSql()
}

func recentQuery(orderID int, limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = 5
	}

	return sq.Select("id", "order_id", "action", "success", "message", "created_at").
		From(journalTable).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
