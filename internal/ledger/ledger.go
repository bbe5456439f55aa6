// Package ledger provides a GORM-based SQLite stake ledger for the offline voter list: the weight
// of every voter and the thresholds the list was last arranged by.
package ledger

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

const (
	// InMemorySQLiteDSN is a special DSN to create an ephemeral in-memory SQLite database.
	InMemorySQLiteDSN = ":memory:"

	// dbDirPermissions sets directory permissions to 750 (rwxr-x---).
	dbDirPermissions = 0o750

	settingsID = 1
)

// ErrNoStake is returned by VoteWeight for voters without a recorded stake.
var ErrNoStake = errors.New("no stake recorded")

var (
	// gormConfig disables logging output, the CLI logs on its own.
	gormConfig = &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	// schemaModels lists the structs to be auto-migrated into the database.
	schemaModels = []any{
		&VoterStake{},
		&ListSettings{},
	}
)

// Ledger wraps a GORM client.
type Ledger struct {
	client *gorm.DB
}

// OpenFile opens (or creates) a file-backed ledger in the given directory.
func OpenFile(dir, filename string) (*Ledger, error) {
	dsn, err := prepareFilePath(dir, filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare database path")
	}
	return openSQLite(dsn)
}

// OpenInMemory opens a non-persistent ledger, for tests and dry runs.
func OpenInMemory() (*Ledger, error) {
	return openSQLite(InMemorySQLiteDSN)
}

func openSQLite(dsn string) (*Ledger, error) {
	if dsn != InMemorySQLiteDSN && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	if err := db.AutoMigrate(schemaModels...); err != nil {
		return nil, errors.Wrap(err, "failed to auto-migrate database schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}

	// a single connection keeps an in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &Ledger{client: db}, nil
}

// Close safely closes the underlying database connection.
func (l *Ledger) Close() error {
	sqlDB, err := l.client.DB()
	if err != nil {
		return errors.Wrap(err, "failed to retrieve native sql.DB")
	}

	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close database connection")
	}

	return nil
}

// SetWeight records the stake of a voter, replacing any previous value.
func (l *Ledger) SetWeight(ctx context.Context, voter sdk.AccAddress, weight uint64) error {
	stake := VoterStake{
		Address: voter.String(),
		Weight:  strconv.FormatUint(weight, 10),
	}

	err := l.client.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
	}).Create(&stake).Error
	if err != nil {
		return errors.Wrapf(err, "failed to store stake of %s", voter)
	}
	return nil
}

// Weight returns the recorded stake of a voter.
func (l *Ledger) Weight(ctx context.Context, voter sdk.AccAddress) (uint64, bool, error) {
	var stake VoterStake
	err := l.client.WithContext(ctx).Where("address = ?", voter.String()).First(&stake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "failed to load stake of %s", voter)
	}

	weight, err := strconv.ParseUint(stake.Weight, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "corrupt stake %q of %s", stake.Weight, voter)
	}
	return weight, true, nil
}

// VoteWeight is a types.VoteWeightFn over the ledger. Voters without a stake are an error.
func (l *Ledger) VoteWeight(ctx context.Context, voter sdk.AccAddress) (uint64, error) {
	weight, found, err := l.Weight(ctx, voter)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errors.Wrapf(ErrNoStake, "voter %s", voter)
	}
	return weight, nil
}

// DeleteWeight forgets the stake of a voter.
func (l *Ledger) DeleteWeight(ctx context.Context, voter sdk.AccAddress) error {
	err := l.client.WithContext(ctx).Unscoped().Where("address = ?", voter.String()).Delete(&VoterStake{}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to delete stake of %s", voter)
	}
	return nil
}

// Stakes returns every recorded stake ordered by address.
func (l *Ledger) Stakes(ctx context.Context) ([]VoterStake, error) {
	var stakes []VoterStake
	if err := l.client.WithContext(ctx).Order("address").Find(&stakes).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stakes")
	}
	return stakes, nil
}

// Thresholds returns the thresholds the list was last arranged by, if any were recorded.
func (l *Ledger) Thresholds(ctx context.Context) (types.Thresholds, bool, error) {
	var settings ListSettings
	err := l.client.WithContext(ctx).First(&settings, settingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to load list settings")
	}

	thresholds, err := types.ParseThresholds(settings.Thresholds)
	if err != nil {
		return nil, false, errors.Wrap(err, "corrupt list settings")
	}
	return thresholds, true, nil
}

// SetThresholds records the thresholds the list is arranged by.
func (l *Ledger) SetThresholds(ctx context.Context, thresholds types.Thresholds) error {
	settings := ListSettings{Thresholds: thresholds.String()}
	settings.ID = settingsID

	if err := l.client.WithContext(ctx).Save(&settings).Error; err != nil {
		return errors.Wrap(err, "failed to store list settings")
	}
	return nil
}

// prepareFilePath ensures the target directory exists and returns the full database file path.
func prepareFilePath(dir, filename string) (string, error) {
	if strings.Contains(dir, InMemorySQLiteDSN) {
		return dir, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, dbDirPermissions); err != nil {
			return "", errors.Wrapf(err, "failed to create directory: %s", dir)
		}
	} else if err != nil {
		return "", errors.Wrap(err, "error checking directory")
	}

	return fmt.Sprintf("%s/%s", dir, filename), nil
}
