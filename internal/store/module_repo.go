package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

const moduleColumns = "id, name, namespace, description, created_at, updated_at"

// ModuleRepository stores modules.
type ModuleRepository struct {
	db *sql.DB
}

func NewModuleRepository(db *sql.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// Create persists m and sets its ID.
func (r *ModuleRepository) Create(ctx context.Context, m *Module) error {
	if m.Name == "" || m.Namespace == "" {
		return errors.New("module name and namespace are required")
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO modules (name, namespace, description) VALUES (?, ?, ?)",
		m.Name, m.Namespace, nullString(m.Description),
	)
	if err != nil {
		return translate(err, "failed to create module %s", m.Name)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return errors.Wrap(err, "failed to read module id")
	}
	return nil
}

func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*Module, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+moduleColumns+" FROM modules WHERE id = ?", id)
	m, err := scanModule(row)
	if err != nil {
		return nil, translate(err, "module %d", id)
	}
	return m, nil
}

func (r *ModuleRepository) GetByName(ctx context.Context, name string) (*Module, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+moduleColumns+" FROM modules WHERE name = ?", name)
	m, err := scanModule(row)
	if err != nil {
		return nil, translate(err, "module %s", name)
	}
	return m, nil
}

// List returns all modules ordered by name.
func (r *ModuleRepository) List(ctx context.Context) ([]*Module, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+moduleColumns+" FROM modules ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list modules")
	}
	defer rows.Close()

	var modules []*Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan module")
		}
		modules = append(modules, m)
	}
	return modules, errors.Wrap(rows.Err(), "failed to list modules")
}

func (r *ModuleRepository) Update(ctx context.Context, m *Module) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE modules SET name = ?, namespace = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		m.Name, m.Namespace, nullString(m.Description), m.ID,
	)
	if err != nil {
		return translate(err, "failed to update module %d", m.ID)
	}
	return requireAffected(res, "module %d", m.ID)
}

// Delete removes the module together with its DTOs.
func (r *ModuleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM modules WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete module %d", id)
	}
	return requireAffected(res, "module %d", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanModule(s scanner) (*Module, error) {
	var (
		m           Module
		description sql.NullString
	)
	if err := s.Scan(&m.ID, &m.Name, &m.Namespace, &description, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Description = description.String
	return &m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, format, args...)
	}
	return nil
}
