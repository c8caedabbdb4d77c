package adapters

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormschema "gorm.io/gorm/schema"

	"auth_adapter/internal/feature/auth/schema"
)

// TestModels_MatchTableDefinitions guards against a model drifting from the DDL.
func TestModels_MatchTableDefinitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		model  interface{}
		table  schema.Table
		wantPK []string
	}{
		{model: &UserModel{}, table: schema.Users.Definition(), wantPK: []string{"id"}},
		{model: &AccountModel{}, table: schema.Accounts.Definition(), wantPK: []string{"provider", "provider_account_id"}},
		{model: &SessionModel{}, table: schema.Sessions.Definition()},
		{model: &VerificationTokenModel{}, table: schema.VerificationTokens.Definition(), wantPK: []string{"id", "token"}},
	}

	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			t.Parallel()

			parsed, err := gormschema.Parse(tt.model, &sync.Map{}, gormschema.NamingStrategy{})
			require.NoError(t, err)

			assert.Equal(t, tt.table.Name, parsed.Table)
			assert.Equal(t, tt.table.ColumnNames(), parsed.DBNames)
			if tt.wantPK == nil {
				assert.Empty(t, parsed.PrimaryFieldDBNames)
			} else {
				assert.Equal(t, tt.wantPK, parsed.PrimaryFieldDBNames)
			}
		})
	}
}
