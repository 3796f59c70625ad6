package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mhasan/show-catalog/internal/apperror"
	"github.com/mhasan/show-catalog/internal/model"
	"github.com/mhasan/show-catalog/internal/repository"
)

// Compile-time check that *DB satisfies the repository interface. If a method
// goes missing or changes signature, this line fails the build immediately
// instead of at some distant call site.
var _ repository.ShowRepository = (*DB)(nil)

// Create inserts a new show and fills the generated ID on the passed struct.
//
// The ? placeholders are filled in order by the arguments after the SQL
// string — the driver escapes them, which is what prevents SQL injection.
// Never build SQL with fmt.Sprintf or string concatenation.
func (db *DB) Create(ctx context.Context, show *model.Show) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO shows (title, description, category, image)
		 VALUES (?, ?, ?, ?)`,
		show.Title,
		show.Description,
		show.Category,
		show.Image,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating show: %w", err)
	}

	// AUTOINCREMENT assigned the id — LastInsertId reads it back so the
	// caller gets the full record without a second query.
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading generated show id: %w", err)
	}
	show.ID = id

	return nil
}

// List returns all shows ordered by id (insertion order).
func (db *DB) List(ctx context.Context) ([]model.Show, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, category, image
		 FROM shows
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shows: %w", err)
	}
	// rows holds a connection from the pool — always close it.
	defer rows.Close()

	shows := []model.Show{}
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Image); err != nil {
			return nil, fmt.Errorf("sqlite: scanning show row: %w", err)
		}
		shows = append(shows, s)
	}

	// rows.Err catches failures that happened during iteration, which the
	// Scan calls above won't see.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating shows: %w", err)
	}

	return shows, nil
}

// GetByID retrieves a single show. Returns apperror.NotFound when no row
// matches — sql.ErrNoRows is not a real error, just "nothing there", and
// translating it here keeps database details out of the layers above.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	var show model.Show

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, category, image
		 FROM shows
		 WHERE id = ?`,
		id,
	).Scan(&show.ID, &show.Title, &show.Description, &show.Category, &show.Image)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Show")
		}
		return nil, fmt.Errorf("sqlite: getting show %d: %w", id, err)
	}

	return &show, nil
}

// Update overwrites title, description and category. The image column uses
// COALESCE so a nil show.Image (no new upload) leaves the stored image
// untouched, while a non-nil value replaces it.
//
// RowsAffected distinguishes "updated" from "no such row" in a single
// statement — cheaper than SELECT-then-UPDATE and atomic without a
// transaction.
func (db *DB) Update(ctx context.Context, show *model.Show) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE shows
		 SET title = ?, description = ?, category = ?, image = COALESCE(?, image)
		 WHERE id = ?`,
		show.Title,
		show.Description,
		show.Category,
		show.Image,
		show.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating show %d: %w", show.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Show")
	}

	return nil
}

// Delete removes a show by id. Same RowsAffected pattern as Update for the
// not-found case. The uploaded image file, if any, is left on disk — see the
// upload package for why.
func (db *DB) Delete(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM shows WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting show %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Show")
	}

	return nil
}
