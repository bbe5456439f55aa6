package module

import (
	"encoding/json"
	"fmt"

	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	abci "github.com/cometbft/cometbft/abci/types"

	"cosmossdk.io/core/appmodule"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/pushchain/voterbags/x/voterbags/keeper"
	v2 "github.com/pushchain/voterbags/x/voterbags/migrations/v2"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

const (
	// ConsensusVersion defines the current x/voterbags module consensus version.
	// @dev: Bumped from 1->2 when the bag thresholds were changed
	ConsensusVersion = 2
)

var (
	_ module.AppModuleBasic      = AppModuleBasic{}
	_ module.HasGenesisBasics    = AppModuleBasic{}
	_ module.HasABCIGenesis      = AppModule{}
	_ module.HasInvariants       = AppModule{}
	_ module.HasServices         = AppModule{}
	_ module.HasConsensusVersion = AppModule{}
	_ module.AppModule           = AppModule{}
)

// AppModuleBasic defines the basic application module used by the voterbags module.
type AppModuleBasic struct {
	cdc codec.Codec
}

type AppModule struct {
	AppModuleBasic

	keeper keeper.Keeper

	// thresholds the list was arranged by before the v2 upgrade
	previousThresholds types.Thresholds
}

// NewAppModule constructor. previousThresholds are only used by the 1 -> 2 migration.
func NewAppModule(
	cdc codec.Codec,
	keeper keeper.Keeper,
	previousThresholds types.Thresholds,
) *AppModule {
	return &AppModule{
		AppModuleBasic:     AppModuleBasic{cdc: cdc},
		keeper:             keeper,
		previousThresholds: previousThresholds,
	}
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface.
func (am AppModule) IsAppModule() {}

var _ appmodule.AppModule = AppModule{}

func (a AppModuleBasic) Name() string {
	return types.ModuleName
}

// The genesis state is plain JSON: the module has no protobuf types.
func (a AppModuleBasic) DefaultGenesis(_ codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(err)
	}
	return bz
}

func (a AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, message json.RawMessage) error {
	var data types.GenesisState
	if err := json.Unmarshal(message, &data); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidGenesis, "failed to unmarshal %s genesis state: %s", types.ModuleName, err)
	}
	return data.Validate()
}

func (a AppModuleBasic) RegisterGRPCGatewayRoutes(_ client.Context, _ *runtime.ServeMux) {
}

func (AppModuleBasic) RegisterLegacyAminoCodec(_ *codec.LegacyAmino) {
}

func (a AppModuleBasic) RegisterInterfaces(_ codectypes.InterfaceRegistry) {
}

func (a AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, message json.RawMessage) []abci.ValidatorUpdate {
	var genesisState types.GenesisState
	if err := json.Unmarshal(message, &genesisState); err != nil {
		panic(err)
	}

	if err := a.keeper.InitGenesis(ctx, &genesisState); err != nil {
		panic(err)
	}

	return nil
}

func (a AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	genState := a.keeper.ExportGenesis(ctx)
	bz, err := json.Marshal(genState)
	if err != nil {
		panic(err)
	}
	return bz
}

func (a AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, a.keeper)
}

func (a AppModule) QuerierRoute() string {
	return types.QuerierRoute
}

func (a AppModule) RegisterServices(cfg module.Configurator) {
	// Register voterbags custom migration for v2 (from version 1 → 2)
	if err := cfg.RegisterMigration(types.ModuleName, 1, a.migrateToV2()); err != nil {
		panic(fmt.Errorf("failed to register migration for voterbags module: %w", err))
	}
}

func (a AppModule) migrateToV2() module.MigrationHandler {
	return func(ctx sdk.Context) error {
		ctx.Logger().Info("Running voterbags module migration: v1 → v2")

		return v2.MigrateThresholds(ctx, &a.keeper, a.previousThresholds)
	}
}

// ConsensusVersion is a sequence number for state-breaking change of the
// module. It should be incremented on each consensus-breaking change
// introduced by the module. To avoid wrong/empty versions, the initial version
// should be set to 1.
func (a AppModule) ConsensusVersion() uint64 {
	return ConsensusVersion
}
