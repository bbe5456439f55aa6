// Package sandbox runs the voter list outside a chain: the module store lives in a local IAVL
// multistore and voter weights come from a SQLite stake ledger.
package sandbox

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/internal/config"
	"github.com/pushchain/voterbags/internal/ledger"
	"github.com/pushchain/voterbags/x/voterbags/keeper"
	"github.com/pushchain/voterbags/x/voterbags/types"
)

const (
	storeDBName  = "voterbags"
	ledgerDBName = "ledger.db"
)

// ErrThresholdsChanged is returned by mutating operations while the stored list is still arranged
// by other thresholds than the configured ones.
var ErrThresholdsChanged = errors.New("thresholds changed, run migrate first")

type Options struct {
	// Dir holds the store and the ledger. Ignored by the memdb backend.
	Dir        string
	Backend    string
	Thresholds types.Thresholds
	Logger     log.Logger
}

type Sandbox struct {
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	ledger *ledger.Ledger
	logger log.Logger

	// keeper arranges by the configured thresholds, stored by the ones the list was built with
	keeper keeper.Keeper
	stored keeper.Keeper
	stale  bool
}

// Open opens (or creates) the sandbox described by opts.
func Open(opts Options) (*Sandbox, error) {
	if err := opts.Thresholds.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	var (
		db  dbm.DB
		led *ledger.Ledger
		err error
	)
	switch opts.Backend {
	case config.BackendMemDB:
		db = dbm.NewMemDB()
		led, err = ledger.OpenInMemory()
	case config.BackendGoLevelDB, "":
		if db, err = dbm.NewDB(storeDBName, dbm.GoLevelDBBackend, opts.Dir); err != nil {
			return nil, errors.Wrap(err, "failed to open store database")
		}
		led, err = ledger.OpenFile(opts.Dir, ledgerDBName)
	default:
		return nil, errors.Errorf("unsupported db backend %q", opts.Backend)
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	s := &Sandbox{db: db, ledger: led, logger: logger}
	if err := s.init(opts.Thresholds); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sandbox) init(thresholds types.Thresholds) error {
	key := storetypes.NewKVStoreKey(types.StoreKey)

	s.cms = store.NewCommitMultiStore(s.db, s.logger, metrics.NewNoOpMetrics())
	s.cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	if err := s.cms.LoadLatestVersion(); err != nil {
		return errors.Wrap(err, "failed to load store")
	}

	storeService := runtime.NewKVStoreService(key)
	s.keeper = keeper.NewKeeper(storeService, s.logger, thresholds, s.ledger.VoteWeight, nil)
	s.stored = s.keeper

	previous, found, err := s.ledger.Thresholds(context.Background())
	if err != nil {
		return err
	}
	if !found {
		return s.ledger.SetThresholds(context.Background(), thresholds)
	}
	if !previous.Equal(thresholds) {
		s.stored = keeper.NewKeeper(storeService, s.logger, previous, s.ledger.VoteWeight, nil)
		s.stale = true
		s.logger.Info("configured thresholds differ from the stored list",
			"stored", previous.String(), "configured", thresholds.String())
	}
	return nil
}

// Close releases the store and the ledger.
func (s *Sandbox) Close() error {
	var errs []error
	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close store database"))
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Thresholds returns the configured thresholds and, when they differ, the ones the stored list is
// still arranged by.
func (s *Sandbox) Thresholds() (configured, stored types.Thresholds, stale bool) {
	return s.keeper.Thresholds(), s.stored.Thresholds(), s.stale
}

func (s *Sandbox) context() sdk.Context {
	header := cmtproto.Header{
		Height: s.cms.LastCommitID().Version + 1,
		Time:   time.Now().UTC(),
	}
	return sdk.NewContext(s.cms, header, false, s.logger)
}

// exec runs fn against a cached context and commits only if fn succeeds.
func (s *Sandbox) exec(fn func(ctx sdk.Context) error) error {
	if s.stale {
		return ErrThresholdsChanged
	}

	cacheCtx, write := s.context().CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	s.cms.Commit()
	return nil
}
