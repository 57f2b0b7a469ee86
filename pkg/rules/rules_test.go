package rules

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sampleRules = `
rules:
  - name: AggressionRule
    description: Flags aggressive order flow
    json: '{"threshold": 0.8}'
    template: "if score > {threshold} then flag"
    sql: "SELECT * FROM trades WHERE score > 0.8"
    sql_part: "score > 0.8"
  - name: ExposureRule
    description: Caps book exposure
`

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		defs, err := Parse(strings.NewReader(sampleRules))
		require.NoError(t, err)
		require.Len(t, defs, 2)

		assert.Equal(t, "AggressionRule", defs[0].Name)
		assert.Equal(t, "Flags aggressive order flow", defs[0].Description)
		assert.Equal(t, "SELECT * FROM trades WHERE score > 0.8", defs[0].SQL)
		assert.Equal(t, "score > 0.8", defs[0].SQLPart)
		assert.Equal(t, "ExposureRule", defs[1].Name)
	})

	t.Run("empty document", func(t *testing.T) {
		defs, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, defs)
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("{{{{"))
		assert.Error(t, err)
	})
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestLoad(t *testing.T) {
	t.Run("unknown rule is created", func(t *testing.T) {
		gormDB, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT .* FROM "rule_names"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "rule_names"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		loader := NewLoader(gormDB)
		result, err := loader.Load([]Definition{{Name: "AggressionRule"}})
		require.NoError(t, err)

		assert.Equal(t, []string{"AggressionRule"}, result.Created)
		assert.Empty(t, result.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("known rule is overwritten", func(t *testing.T) {
		gormDB, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT .* FROM "rule_names"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "AggressionRule"))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "rule_names"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		loader := NewLoader(gormDB)
		result, err := loader.Load([]Definition{{Name: "AggressionRule", Description: "updated"}})
		require.NoError(t, err)

		assert.Empty(t, result.Created)
		assert.Equal(t, []string{"AggressionRule"}, result.Updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dry run never writes", func(t *testing.T) {
		gormDB, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT .* FROM "rule_names"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		loader := NewLoader(gormDB).WithDryRun(true)
		result, err := loader.Load([]Definition{{Name: "AggressionRule"}})
		require.NoError(t, err)

		assert.Equal(t, []string{"AggressionRule"}, result.Created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nameless rule is rejected", func(t *testing.T) {
		gormDB, _ := newMockDB(t)

		loader := NewLoader(gormDB)
		_, err := loader.Load([]Definition{{Description: "no name"}})
		assert.Error(t, err)
	})

	t.Run("oversized field is rejected", func(t *testing.T) {
		gormDB, _ := newMockDB(t)

		loader := NewLoader(gormDB)
		_, err := loader.Load([]Definition{{
			Name:        strings.Repeat("x", 101),
			Description: "too long a name",
		}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name")
	})
}
