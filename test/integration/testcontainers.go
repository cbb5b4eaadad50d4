package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/permiso/pkg/db"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
	"github.com/doodlesbykumbi/permiso/pkg/sharing"
	storegorm "github.com/doodlesbykumbi/permiso/pkg/store/gorm"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string

	Records     *storegorm.RecordsStore
	Invitations *storegorm.InvitationsStore
	Resolver    *resolver.Resolver
	Workflow    *sharing.Workflow
}

// NewTestContext starts a PostgreSQL testcontainer, migrates the schema,
// and wires the stores, resolver, and workflow against it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("permiso_test"),
		tcpostgres.WithUsername("permiso"),
		tcpostgres.WithPassword("permiso"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://permiso:permiso@%s:%s/permiso_test?sslmode=disable", host, port.Port())

	if _, err := db.Migrate(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	database, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	records := storegorm.NewRecordsStore(database)
	invitations := storegorm.NewInvitationsStore(database)
	res := resolver.NewResolver(records)

	return &TestContext{
		DB:          database,
		Container:   pgContainer,
		DatabaseURL: connStr,
		Records:     records,
		Invitations: invitations,
		Resolver:    res,
		Workflow:    sharing.NewWorkflow(records, invitations, res, nil),
	}, nil
}

// Close tears down the container.
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
