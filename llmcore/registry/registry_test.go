package registry

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentflow/llmcore/errs"
	"github.com/BaSui01/agentflow/llmcore/types"
)

func TestBuiltinModelsResolveByProviderAndID(t *testing.T) {
	r := New(nil)

	m, err := r.Model(types.KnownProviderOf(types.ProviderMinimax), "MiniMax-M2.5")
	require.NoError(t, err)
	assert.Equal(t, types.APIMinimaxCompletions, m.API)
	assert.True(t, m.Reasoning)
}

func TestModelNotFoundReturnsTypedError(t *testing.T) {
	r := New(nil)

	_, err := r.Model(types.KnownProviderOf(types.ProviderOpenAI), "does-not-exist")
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.CodeModelNotFound, e.Code)
}

func TestProviderResolvesByAPI(t *testing.T) {
	r := New(nil)

	m, err := r.Model(types.KnownProviderOf(types.ProviderOpenAI), "gpt-4o")
	require.NoError(t, err)

	p, err := r.Provider(m)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProviderUnknownAPIErrors(t *testing.T) {
	r := New(nil)
	_, err := r.Provider(types.Model{API: types.API("carrier-pigeon")})
	require.Error(t, err)
}

func TestAPIKeyReadsProviderSpecificEnvVar(t *testing.T) {
	os.Setenv("MINIMAX_CN_API_KEY", "secret-cn")
	defer os.Unsetenv("MINIMAX_CN_API_KEY")

	key, err := APIKey(types.KnownProviderOf(types.ProviderMinimaxCN))
	require.NoError(t, err)
	assert.Equal(t, "secret-cn", key)
}

func TestAPIKeyFallsBackToGenericConvention(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "secret-openai")
	defer os.Unsetenv("OPENAI_API_KEY")

	key, err := APIKey(types.KnownProviderOf(types.ProviderOpenAI))
	require.NoError(t, err)
	assert.Equal(t, "secret-openai", key)
}

func TestAPIKeyMissingReturnsNoAPIKeyError(t *testing.T) {
	os.Unsetenv("XAI_API_KEY")

	_, err := APIKey(types.KnownProviderOf(types.ProviderXai))
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.CodeNoAPIKey, e.Code)
}
