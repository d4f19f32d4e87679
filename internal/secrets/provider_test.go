package secrets_test

import (
	"context"
	"testing"

	"github.com/reproute/crm-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEnvProvider(t *testing.T) *secrets.Provider {
	t.Helper()
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceEnvironment,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)
	return provider
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("TEST_SECRET_VALUE", "from-env")

	provider := newEnvProvider(t)

	assert.Equal(t, secrets.SourceEnvironment, provider.Source())
	assert.False(t, provider.IsVaultEnabled())

	value, err := provider.GetSecret(context.Background(), "TEST_SECRET_VALUE")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestProvider_MissingEnvironmentSecret(t *testing.T) {
	provider := newEnvProvider(t)

	_, err := provider.GetSecret(context.Background(), "TEST_SECRET_DOES_NOT_EXIST")
	assert.Error(t, err)
}

func TestProvider_GetSecretOrEnvPrefersOverride(t *testing.T) {
	t.Setenv("TEST_SECRET_PRIMARY", "primary")
	t.Setenv("TEST_SECRET_OVERRIDE", "override")

	provider := newEnvProvider(t)

	value, err := provider.GetSecretOrEnv(context.Background(), "TEST_SECRET_PRIMARY", "TEST_SECRET_OVERRIDE")
	require.NoError(t, err)
	assert.Equal(t, "override", value)
}

func TestProvider_AutoResolvesToEnvironmentInDevelopment(t *testing.T) {
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceAuto,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, secrets.SourceEnvironment, provider.Source())
}

func TestProvider_VaultSourceRequiresVaultName(t *testing.T) {
	_, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceVault,
		Environment: "production",
	}, zap.NewNop())
	assert.Error(t, err)
}
