package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Ordenadas(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_schema.sql", "0002_audit.sql", "0003_rls.sql"}, names)
}

func TestMigrations_CubrenTablasAuditadas(t *testing.T) {
	body, err := migrationFiles.ReadFile("migrations/0002_audit.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "company_settings", "customers", "products", "sales", "sale_items"} {
		assert.Contains(t, string(body), "'"+table+"'")
	}

	rls, err := migrationFiles.ReadFile("migrations/0003_rls.sql")
	require.NoError(t, err)
	assert.Contains(t, string(rls), "FORCE ROW LEVEL SECURITY")
}
