package questdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgWirePort = "8812/tcp"

// TestContainer wraps a QuestDB testcontainer with utilities
type TestContainer struct {
	Container testcontainers.Container
	Client    QuestDBClient
	Config    Config
	ctx       context.Context
}

// TestContainerConfig holds configuration for the test container
type TestContainerConfig struct {
	Image          string
	MigrationsPath string // Path to *.up.sql files
	StartupTimeout time.Duration
	ExtraEnvVars   map[string]string
}

// DefaultTestContainerConfig returns a default configuration
func DefaultTestContainerConfig() *TestContainerConfig {
	return &TestContainerConfig{
		Image:          "questdb/questdb:8.2.1",
		StartupTimeout: 2 * time.Minute,
		ExtraEnvVars:   map[string]string{},
	}
}

// NewTestContainer creates and starts a new QuestDB test container
func NewTestContainer(ctx context.Context, config *TestContainerConfig) (*TestContainer, error) {
	if config == nil {
		config = DefaultTestContainerConfig()
	}

	req := testcontainers.ContainerRequest{
		Image:        config.Image,
		ExposedPorts: []string{pgWirePort},
		Env:          config.ExtraEnvVars,
		WaitingFor:   wait.ForListeningPort(pgWirePort).WithStartupTimeout(config.StartupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start questdb container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, pgWirePort)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	clientConfig := Config{
		Host:            host,
		Port:            port.Int(),
		Database:        "qdb",
		Username:        "admin",
		Password:        "quest",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}

	client, err := NewClient(ctx, clientConfig)
	if err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	tc := &TestContainer{
		Container: container,
		Client:    client,
		Config:    clientConfig,
		ctx:       ctx,
	}

	if config.MigrationsPath != "" {
		if err := tc.RunMigrations(config.MigrationsPath); err != nil {
			tc.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return tc, nil
}

// Close closes the connection and terminates the container
func (tc *TestContainer) Close() error {
	if tc.Client != nil {
		tc.Client.Close()
	}

	if tc.Container != nil {
		if err := tc.Container.Terminate(tc.ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}

	return nil
}

// RunMigrations executes every *.up.sql file of the directory in name order.
// QuestDB accepts a single statement per Exec, so files are split on ';'.
func (tc *TestContainer) RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", migrationsPath)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		for _, stmt := range SplitStatements(string(content)) {
			if err := tc.Client.Exec(tc.ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute statement in %s: %w\nStatement: %s",
					filepath.Base(file), err, stmt)
			}
		}
	}

	return nil
}

// TruncateTables empties the given tables (useful for test cleanup)
func (tc *TestContainer) TruncateTables(tables ...string) error {
	for _, table := range tables {
		if err := tc.Client.Exec(tc.ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// SplitStatements strips comment lines and splits SQL content on ';'.
func SplitStatements(sql string) []string {
	var cleanLines []string
	for _, line := range strings.Split(sql, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleanLines = append(cleanLines, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(cleanLines, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
