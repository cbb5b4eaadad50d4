// permisoctl is the command-line interface for permiso, a hierarchical
// permission resolver.
//
// # Quick Start
//
//	# Run database migrations
//	permisoctl db migrate
//
//	# Load baseline defaults
//	permisoctl policy load defaults.yml
//
//	# Grant and check permissions
//	permisoctl grant --tenant acme --resource doc-1 --user alice read,edit,share
//	permisoctl check --tenant acme --resource doc-1 --user alice edit
//	permisoctl explain --tenant acme --resource doc-1 --user alice edit
//
//	# Share a resource
//	permisoctl share --tenant acme --resource doc-1 --by alice --with bob read,comment
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - PERMISO_AUDIT_ENABLED: audit event emission
//   - PERMISO_LOG_LEVEL: Set to "debug" for SQL query logging
package main
