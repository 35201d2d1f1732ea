package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

const (
	dtoColumns      = "id, module_id, name, namespace, comment, created_at, updated_at"
	propertyColumns = "id, dto_id, position, name, type_name, type_full_name, comment, is_nullable, is_list, has_getter, has_setter"
)

// DtoRepository stores DTOs. Properties are always written and read together
// with their DTO.
type DtoRepository struct {
	db *sql.DB
}

func NewDtoRepository(db *sql.DB) *DtoRepository {
	return &DtoRepository{db: db}
}

// Create persists d and its properties in one transaction and sets the IDs.
func (r *DtoRepository) Create(ctx context.Context, d *Dto) error {
	if d.Name == "" {
		return errors.New("dto name is required")
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO dtos (module_id, name, namespace, comment) VALUES (?, ?, ?, ?)",
			d.ModuleID, d.Name, d.Namespace, nullString(d.Comment),
		)
		if err != nil {
			return translate(err, "failed to create dto %s", d.Name)
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "failed to read dto id")
		}
		return insertProperties(ctx, tx, d)
	})
}

func (r *DtoRepository) GetByID(ctx context.Context, id int64) (*Dto, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+dtoColumns+" FROM dtos WHERE id = ?", id)
	d, err := scanDto(row)
	if err != nil {
		return nil, translate(err, "dto %d", id)
	}
	if d.Properties, err = r.properties(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DtoRepository) GetByName(ctx context.Context, moduleID int64, name string) (*Dto, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+dtoColumns+" FROM dtos WHERE module_id = ? AND name = ?", moduleID, name)
	d, err := scanDto(row)
	if err != nil {
		return nil, translate(err, "dto %s", name)
	}
	if d.Properties, err = r.properties(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns the module's DTOs ordered by name, with properties.
func (r *DtoRepository) List(ctx context.Context, moduleID int64) ([]*Dto, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+dtoColumns+" FROM dtos WHERE module_id = ? ORDER BY name", moduleID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dtos")
	}
	var dtos []*Dto
	for rows.Next() {
		d, err := scanDto(rows)
		if err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, "failed to scan dto")
		}
		dtos = append(dtos, d)
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return nil, errors.Wrap(err, "failed to list dtos")
	}
	_ = rows.Close()

	for _, d := range dtos {
		if d.Properties, err = r.properties(ctx, d.ID); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// Update rewrites d and replaces its properties in one transaction.
func (r *DtoRepository) Update(ctx context.Context, d *Dto) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE dtos SET name = ?, namespace = ?, comment = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			d.Name, d.Namespace, nullString(d.Comment), d.ID,
		)
		if err != nil {
			return translate(err, "failed to update dto %d", d.ID)
		}
		if err = requireAffected(res, "dto %d", d.ID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, "DELETE FROM properties WHERE dto_id = ?", d.ID); err != nil {
			return errors.Wrapf(err, "failed to clear properties of dto %d", d.ID)
		}
		return insertProperties(ctx, tx, d)
	})
}

// Delete removes the DTO and its properties.
func (r *DtoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM dtos WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete dto %d", id)
	}
	return requireAffected(res, "dto %d", id)
}

func (r *DtoRepository) properties(ctx context.Context, dtoID int64) ([]Property, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE dto_id = ? ORDER BY position", dtoID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list properties of dto %d", dtoID)
	}
	defer rows.Close()

	var props []Property
	for rows.Next() {
		var (
			p            Property
			typeFullName sql.NullString
			comment      sql.NullString
		)
		err = rows.Scan(&p.ID, &p.DtoID, &p.Position, &p.Name, &p.TypeName, &typeFullName, &comment,
			&p.IsNullable, &p.IsList, &p.HasGetter, &p.HasSetter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan property")
		}
		p.TypeFullName = typeFullName.String
		p.Comment = comment.String
		props = append(props, p)
	}
	return props, errors.Wrap(rows.Err(), "failed to list properties")
}

func (r *DtoRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.WithSecondaryError(err, rbErr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "failed to commit transaction")
}

// insertProperties writes d.Properties, renumbering positions to slice order.
func insertProperties(ctx context.Context, tx *sql.Tx, d *Dto) error {
	for i := range d.Properties {
		p := &d.Properties[i]
		p.DtoID = d.ID
		p.Position = i
		res, err := tx.ExecContext(ctx,
			"INSERT INTO properties (dto_id, position, name, type_name, type_full_name, comment, is_nullable, is_list, has_getter, has_setter) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.DtoID, p.Position, p.Name, p.TypeName, nullString(p.TypeFullName), nullString(p.Comment),
			boolInt(p.IsNullable), boolInt(p.IsList), boolInt(p.HasGetter), boolInt(p.HasSetter),
		)
		if err != nil {
			return translate(err, "failed to create property %s.%s", d.Name, p.Name)
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "failed to read property id")
		}
	}
	return nil
}

func scanDto(s scanner) (*Dto, error) {
	var (
		d       Dto
		comment sql.NullString
	)
	if err := s.Scan(&d.ID, &d.ModuleID, &d.Name, &d.Namespace, &comment, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Comment = comment.String
	return &d, nil
}
