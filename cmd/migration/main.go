package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/fantasy-projections/internal/app"
	"github.com/riskibarqy/fantasy-projections/internal/config"
	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

const seedTimeout = 30 * time.Second

var migrationDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

type runner struct {
	cfg    config.Config
	logger *logging.Logger
}

type command struct {
	usage string
	run   func(r runner, args []string) error
}

var commands = map[string]command{
	"up":           {usage: "up", run: runUp},
	"down":         {usage: "down [steps]", run: runDown},
	"version":      {usage: "version", run: runVersion},
	"force":        {usage: "force <version>", run: runForce},
	"goto":         {usage: "goto <version>", run: runGoto},
	"seed-scoring": {usage: "seed-scoring", run: runSeedScoring},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		fmt.Fprintf(os.Stderr, "migrations need STORAGE_DRIVER=%s, got %s\n", config.StoragePostgres, cfg.StorageDriver)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).Named("migration")
	defer func() {
		_ = logger.Sync()
	}()

	if err := cmd.run(runner{cfg: cfg, logger: logger}, os.Args[2:]); err != nil {
		logger.Error("migration command failed", "command", name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func (r runner) withMigrator(fn func(m *migrate.Migrate) error) error {
	dir, err := resolveMigrationsDir()
	if err != nil {
		return err
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, app.NormalizeDBURL(r.cfg.DBURL, r.cfg.DBDisablePreparedBinary))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			r.logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			r.logger.Warn("close migration db", "error", dbErr)
		}
	}()

	r.logger.Info("migrator ready", "source", sourceURL)
	return fn(m)
}

// ignoreNoChange treats an already-current schema as success.
func (r runner) ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("no migration changes")
		return nil
	}
	return err
}

func runUp(r runner, _ []string) error {
	return r.withMigrator(func(m *migrate.Migrate) error {
		if err := r.ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		r.logger.Info("migrations applied")
		return nil
	})
}

func runDown(r runner, args []string) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	return r.withMigrator(func(m *migrate.Migrate) error {
		if err := r.ignoreNoChange(m.Steps(-steps)); err != nil {
			return fmt.Errorf("roll back %d migration(s): %w", steps, err)
		}
		r.logger.Info("migrations rolled back", "steps", steps)
		return nil
	})
}

func runVersion(r runner, _ []string) error {
	return r.withMigrator(func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
		return nil
	})
}

func runForce(r runner, args []string) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	return r.withMigrator(func(m *migrate.Migrate) error {
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		r.logger.Info("forced migration version", "version", version)
		return nil
	})
}

func runGoto(r runner, args []string) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	return r.withMigrator(func(m *migrate.Migrate) error {
		if err := r.ignoreNoChange(m.Migrate(target)); err != nil {
			return fmt.Errorf("migrate to version %d: %w", target, err)
		}
		r.logger.Info("migrated to version", "version", target)
		return nil
	})
}

// runSeedScoring upserts the PPR, Half-PPR and Standard presets. Edited
// presets get their canonical coefficients back.
func runSeedScoring(r runner, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := app.OpenDB(ctx, r.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := usecase.NewScoringConfigService(postgres.NewScoringConfigRepository(db), r.logger)
	seeded, err := svc.SeedPresets(ctx)
	if err != nil {
		return err
	}
	for _, cfg := range seeded {
		r.logger.Info("scoring config seeded", "name", cfg.Name, "is_default", cfg.IsDefault)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir() (string, error) {
	candidates := append([]string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
	}, migrationDirCandidates...)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, %s)", strings.Join(migrationDirCandidates, ", "))
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n", bin)
	fmt.Fprintln(os.Stderr, "commands:")
	for _, name := range []string{"up", "down", "version", "force", "goto", "seed-scoring"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", bin, commands[name].usage)
	}
}
