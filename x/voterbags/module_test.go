package module_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil/integration"
	simtestutil "github.com/cosmos/cosmos-sdk/testutil/sims"
	sdk "github.com/cosmos/cosmos-sdk/types"

	module "github.com/pushchain/voterbags/x/voterbags"
	"github.com/pushchain/voterbags/x/voterbags/keeper"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

type invariantRegistry map[string]sdk.Invariant

func (r invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r[moduleName+"/"+route] = invar
}

func setup(t *testing.T) (sdk.Context, *module.AppModule, []sdk.AccAddress) {
	t.Helper()

	logger := log.NewTestLogger(t)
	keys := storetypes.NewKVStoreKeys(types.ModuleName)
	ctx := sdk.NewContext(integration.CreateMultiStore(keys, logger), cmtproto.Header{}, false, logger)

	addrs := simtestutil.CreateIncrementalAccounts(3)
	weights := map[string]uint64{
		addrs[0].String(): 5,
		addrs[1].String(): 500,
		addrs[2].String(): 50,
	}
	weightOf := func(_ context.Context, voter sdk.AccAddress) (uint64, error) {
		return weights[voter.String()], nil
	}

	k := keeper.NewKeeper(runtime.NewKVStoreService(keys[types.ModuleName]), logger, types.Thresholds{10, 100}, weightOf, nil)
	return ctx, module.NewAppModule(nil, k, types.Thresholds{100}), addrs
}

func TestGenesisRoundTrip(t *testing.T) {
	ctx, am, addrs := setup(t)
	require := require.New(t)

	def := am.DefaultGenesis(nil)
	require.NoError(am.ValidateGenesis(nil, nil, def))

	gs := types.GenesisState{Voters: []types.GenesisVoter{
		{Address: addrs[0].String(), VoterType: types.VoterTypeNominator},
		{Address: addrs[1].String(), VoterType: types.VoterTypeValidator},
		{Address: addrs[2].String(), VoterType: types.VoterTypeNominator},
	}}
	bz, err := json.Marshal(gs)
	require.NoError(err)
	require.NoError(am.ValidateGenesis(nil, nil, bz))

	require.Nil(am.InitGenesis(ctx, nil, bz))

	var exported types.GenesisState
	require.NoError(json.Unmarshal(am.ExportGenesis(ctx, nil), &exported))
	require.Equal([]types.GenesisVoter{gs.Voters[1], gs.Voters[2], gs.Voters[0]}, exported.Voters)
}

func TestValidateGenesis_Invalid(t *testing.T) {
	_, am, addrs := setup(t)

	require.ErrorIs(t, am.ValidateGenesis(nil, nil, []byte(`{"voters":`)), types.ErrInvalidGenesis)

	dup := []byte(`{"voters":[` +
		`{"address":"` + addrs[0].String() + `","voter_type":"validator"},` +
		`{"address":"` + addrs[0].String() + `","voter_type":"nominator"}]}`)
	require.ErrorIs(t, am.ValidateGenesis(nil, nil, dup), types.ErrInvalidGenesis)
}

func TestRegisterInvariants(t *testing.T) {
	ctx, am, addrs := setup(t)

	bz, err := json.Marshal(types.GenesisState{Voters: []types.GenesisVoter{
		{Address: addrs[0].String(), VoterType: types.VoterTypeNominator},
	}})
	require.NoError(t, err)
	am.InitGenesis(ctx, nil, bz)

	ir := invariantRegistry{}
	am.RegisterInvariants(ir)

	invar, ok := ir[types.ModuleName+"/bags-list"]
	require.True(t, ok)
	_, broken := invar(ctx)
	require.False(t, broken)
}

func TestModuleBasics(t *testing.T) {
	_, am, _ := setup(t)

	require.Equal(t, types.ModuleName, am.Name())
	require.Equal(t, types.QuerierRoute, am.QuerierRoute())
	require.Equal(t, uint64(module.ConsensusVersion), am.ConsensusVersion())
}
