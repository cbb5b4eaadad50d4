package main

import (
	"fmt"
	"os"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
	"github.com/doodlesbykumbi/permiso/pkg/config"
	"github.com/doodlesbykumbi/permiso/pkg/db"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
	"github.com/doodlesbykumbi/permiso/pkg/sharing"
	storegorm "github.com/doodlesbykumbi/permiso/pkg/store/gorm"
)

// runtime wires the stores, resolver, and workflow behind every command
// that touches the database.
type runtime struct {
	cfg         *config.Config
	records     *storegorm.RecordsStore
	invitations *storegorm.InvitationsStore
	resolver    *resolver.Resolver
	workflow    *sharing.Workflow
	audit       *audit.Logger
}

func newRuntime() (*runtime, error) {
	cfg := config.Get()

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}

	records := storegorm.NewRecordsStore(database)
	invitations := storegorm.NewInvitationsStore(database)
	res := resolver.NewResolver(records)

	var auditLogger *audit.Logger
	if cfg.AuditEnabled {
		auditStore, err := audit.NewStore(cfg.AuditURL())
		if err != nil {
			return nil, fmt.Errorf("failed to open audit store: %w", err)
		}
		auditLogger = audit.NewLogger(os.Stderr, auditStore)
	}

	return &runtime{
		cfg:         cfg,
		records:     records,
		invitations: invitations,
		resolver:    res,
		workflow:    sharing.NewWorkflow(records, invitations, res, auditLogger),
		audit:       auditLogger,
	}, nil
}
