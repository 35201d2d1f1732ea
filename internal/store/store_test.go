package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/dto"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	require.NoError(t, InitSchema(ctx, db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedModule(t *testing.T, db *sql.DB, name string) *Module {
	t.Helper()
	m := &Module{Name: name, Namespace: "Acme." + name}
	require.NoError(t, NewModuleRepository(db).Create(context.Background(), m))
	return m
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, InitSchema(context.Background(), db))
}

func TestModuleRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleRepository(db)
	ctx := context.Background()

	m := &Module{Name: "Billing", Namespace: "Acme.Billing", Description: "invoices"}
	require.NoError(t, repo.Create(ctx, m))
	require.NotZero(t, m.ID)

	got, err := repo.GetByName(ctx, "Billing")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "Acme.Billing", got.Namespace)
	assert.Equal(t, "invoices", got.Description)
	assert.False(t, got.CreatedAt.IsZero())

	err = repo.Create(ctx, &Module{Name: "Billing", Namespace: "Other"})
	require.ErrorIs(t, err, ErrAlreadyExists)

	require.Error(t, repo.Create(ctx, &Module{Name: "NoNamespace"}))

	seedModule(t, db, "Accounts")
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Accounts", all[0].Name)
	assert.Equal(t, "Billing", all[1].Name)

	got.Description = ""
	got.Namespace = "Acme.Payments"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme.Payments", got.Namespace)
	assert.Empty(t, got.Description)

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err = repo.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, &Module{ID: m.ID, Name: "x", Namespace: "y"}), ErrNotFound)
}

func newUserDto(moduleID int64) *Dto {
	return FromDefinition(moduleID, dto.Definition{
		Name:      "User",
		Namespace: "Acme.Accounts",
		Comment:   "An account holder.",
		Fields: []dto.Field{
			dto.NewField("Id", "int"),
			{Name: "Email", Type: "string", IsNullable: true, HasGetter: true, HasSetter: true, Comment: "login"},
			{Name: "Tags", Type: "string", IsList: true, HasGetter: true},
		},
	})
}

func TestDtoRepositoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	m := seedModule(t, db, "Accounts")
	repo := NewDtoRepository(db)
	ctx := context.Background()

	d := newUserDto(m.ID)
	require.NoError(t, repo.Create(ctx, d))
	require.NotZero(t, d.ID)
	for _, p := range d.Properties {
		assert.Equal(t, d.ID, p.DtoID)
		assert.NotZero(t, p.ID)
	}

	got, err := repo.GetByName(ctx, m.ID, "User")
	require.NoError(t, err)
	assert.Equal(t, "An account holder.", got.Comment)
	require.Len(t, got.Properties, 3)
	assert.Equal(t, []string{"Id", "Email", "Tags"}, []string{got.Properties[0].Name, got.Properties[1].Name, got.Properties[2].Name})
	assert.True(t, got.Properties[1].IsNullable)
	assert.Equal(t, "login", got.Properties[1].Comment)
	assert.True(t, got.Properties[2].IsList)
	assert.False(t, got.Properties[2].HasSetter)

	def := ToDefinition(got)
	assert.Equal(t, ToDefinition(newUserDto(m.ID)), def)
	require.NoError(t, def.Validate())

	err = repo.Create(ctx, newUserDto(m.ID))
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestDtoRepositoryUpdateReplacesProperties(t *testing.T) {
	db := setupTestDB(t)
	m := seedModule(t, db, "Accounts")
	repo := NewDtoRepository(db)
	ctx := context.Background()

	d := newUserDto(m.ID)
	require.NoError(t, repo.Create(ctx, d))

	d.Comment = ""
	d.Properties = []Property{
		{Name: "Key", TypeName: "Guid", HasGetter: true, HasSetter: true},
		{Name: "Id", TypeName: "long", HasGetter: true, HasSetter: true},
	}
	require.NoError(t, repo.Update(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comment)
	require.Len(t, got.Properties, 2)
	assert.Equal(t, "Key", got.Properties[0].Name)
	assert.Equal(t, 0, got.Properties[0].Position)
	assert.Equal(t, "long", got.Properties[1].TypeName)

	d.Properties = append(d.Properties, Property{Name: "Key", TypeName: "string"})
	require.ErrorIs(t, repo.Update(ctx, d), ErrAlreadyExists)

	got, err = repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, got.Properties, 2, "failed update must roll back")
}

func TestDtoRepositoryListAndCascade(t *testing.T) {
	db := setupTestDB(t)
	m := seedModule(t, db, "Accounts")
	other := seedModule(t, db, "Billing")
	repo := NewDtoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUserDto(m.ID)))
	role := FromDefinition(m.ID, dto.Definition{Name: "Role", Namespace: "Acme.Accounts", Fields: []dto.Field{dto.NewField("Name", "string")}})
	require.NoError(t, repo.Create(ctx, role))
	require.NoError(t, repo.Create(ctx, FromDefinition(other.ID, dto.Definition{Name: "Invoice", Namespace: "Acme.Billing"})))

	list, err := repo.List(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Role", list[0].Name)
	assert.Len(t, list[0].Properties, 1)
	assert.Equal(t, "User", list[1].Name)
	assert.Len(t, list[1].Properties, 3)

	require.NoError(t, NewModuleRepository(db).Delete(ctx, m.ID))
	list, err = repo.List(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&n))
	assert.Zero(t, n)

	err = repo.Create(ctx, FromDefinition(9999, dto.Definition{Name: "Orphan", Namespace: "X"}))
	require.Error(t, err, "foreign keys must be enforced")

	require.ErrorIs(t, repo.Delete(ctx, 9999), ErrNotFound)
	_, err = repo.GetByID(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDtoRepositoryCreateRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dtos").
		WithArgs(int64(1), "User", "Acme.Accounts", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO properties").
		WillReturnError(boom)
	mock.ExpectRollback()

	err = NewDtoRepository(db).Create(context.Background(), newUserDto(1))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to create property User.Id")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepositoryListError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM modules ORDER BY name").WillReturnError(sql.ErrConnDone)

	_, err = NewModuleRepository(db).List(context.Background())
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingPreservesOrder(t *testing.T) {
	def := dto.Definition{Name: "Order", Namespace: "Shop"}
	for _, n := range []string{"Zeta", "Alpha", "Mid"} {
		def.Fields = append(def.Fields, dto.NewField(n, "string"))
	}
	d := FromDefinition(3, def)
	assert.Equal(t, int64(3), d.ModuleID)
	for i, p := range d.Properties {
		assert.Equal(t, i, p.Position)
	}
	assert.Equal(t, def, ToDefinition(d))
}
