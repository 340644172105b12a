package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rxnsmiles-mcp/internal/chem/chemtest"
	"github.com/dshills/rxnsmiles-mcp/internal/rxnsmiles"
	"github.com/dshills/rxnsmiles-mcp/internal/storage"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

func setupStorage(t *testing.T) *storage.SQLiteStorage {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestConvert(t *testing.T) {
	p := New(nil, nil, nil)

	result, err := p.Convert(context.Background(), []string{
		"CC.O.[Na+].[Cl-]>>CCO |f:2.3|",
		"not a reaction",
		"CC.O>>CCO",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"CC.O.[Na+]~[Cl-]>>CCO", ">>", "CC.O>>CCO"}, result.Reactions)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.ErrorMessages, 1)
	assert.True(t, strings.HasPrefix(result.ErrorMessages[0], "line 1:"), result.ErrorMessages[0])
	assert.Greater(t, result.Duration.Nanoseconds(), int64(0))
}

func TestConvert_TargetFormats(t *testing.T) {
	p := New(nil, nil, nil)
	input := []string{"CC.O.[Na+]~[Cl-]>>CCO"}

	tests := []struct {
		format   types.ReactionFormat
		expected string
	}{
		{types.FormatStandard, "CC.O.[Na+].[Cl-]>>CCO"},
		{types.FormatStandardWithTilde, "CC.O.[Na+]~[Cl-]>>CCO"},
		{types.FormatExtended, "CC.O.[Na+].[Cl-]>>CCO |f:2.3|"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			result, err := p.Convert(context.Background(), input, &Config{TargetFormat: tt.format})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.expected}, result.Reactions)
		})
	}
}

func TestConvert_Standardize(t *testing.T) {
	p := New(nil, nil, nil)

	result, err := p.Convert(context.Background(), []string{
		"O.CC>N>CCO",
		"C(>>CCO",
	}, &Config{Standardize: true, Fallback: "INVALID"})
	require.NoError(t, err)

	assert.Equal(t, []string{"CC.N.O>>CCO", "INVALID"}, result.Reactions)
	assert.Equal(t, 1, result.Failed)
}

func TestConvert_UsesCodecToolkit(t *testing.T) {
	tk := chemtest.New(map[string]string{"OCC": "CCO"})
	p := New(rxnsmiles.New(tk, rxnsmiles.Options{}), nil, nil)

	result, err := p.Convert(context.Background(), []string{"CC=O>>OCC"}, &Config{Standardize: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"CC=O>>CCO"}, result.Reactions)
	assert.Positive(t, tk.Calls())
}

func TestConvert_PreservesOrder(t *testing.T) {
	p := New(nil, nil, nil)

	inputs := make([]string, 200)
	expected := make([]string, 200)
	for i := range inputs {
		chain := strings.Repeat("C", i+1)
		inputs[i] = fmt.Sprintf("%s.O>>%sO", chain, chain)
		expected[i] = inputs[i]
	}

	result, err := p.Convert(context.Background(), inputs, &Config{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, expected, result.Reactions)
	assert.Zero(t, result.Failed)
}

func TestConvert_Empty(t *testing.T) {
	p := New(nil, nil, nil)

	result, err := p.Convert(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Reactions)
	assert.Empty(t, result.ErrorMessages)
}

func TestConvert_Cancelled(t *testing.T) {
	p := New(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Convert(ctx, []string{"CC>>CC"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvert_Store(t *testing.T) {
	store := setupStorage(t)
	p := New(nil, store, nil)

	ctx := context.Background()
	result, err := p.Convert(ctx, []string{
		"CC.O>>CCO",
		"invalid",
		"C=C.O>>CCO",
	}, &Config{Store: true, BatchSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stored)

	count, err := store.CountReactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	found, err := store.FindByCompound(ctx, "CCO", storage.RoleProduct, 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestConvert_StoreWithoutStorage(t *testing.T) {
	p := New(nil, nil, nil)

	_, err := p.Convert(context.Background(), []string{"CC>>CC"}, &Config{Store: true})
	assert.Error(t, err)
}

func TestConvertOne(t *testing.T) {
	p := New(nil, nil, nil)

	out, err := p.ConvertOne("CC.O.[Na+].[Cl-]>>CCO |f:2.3|", &Config{TargetFormat: types.FormatStandard})
	require.NoError(t, err)
	assert.Equal(t, "CC.O.[Na+].[Cl-]>>CCO", out)

	_, err = p.ConvertOne("CC", nil)
	assert.ErrorIs(t, err, types.ErrInvalidReactionSmiles)
}

func TestConvert_StoreInProgress(t *testing.T) {
	store := setupStorage(t)
	p := New(nil, store, nil)

	require.True(t, p.storing.TryAcquire())

	_, err := p.Convert(context.Background(), []string{"CC>>CC"}, &Config{Store: true})
	assert.ErrorIs(t, err, ErrStoreInProgress)

	// Conversion without storing is not blocked
	result, err := p.Convert(context.Background(), []string{"CC>>CC"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"CC>>CC"}, result.Reactions)

	p.storing.Release()
	_, err = p.Convert(context.Background(), []string{"CC>>CC"}, &Config{Store: true})
	assert.NoError(t, err)
}

func TestStoreLock(t *testing.T) {
	var lock storeLock

	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())
	lock.Release()
	assert.True(t, lock.TryAcquire())
}
