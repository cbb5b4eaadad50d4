// Package config provides configuration management for permiso.
//
// Configuration is read from /etc/permiso/config/permiso.yml (override the
// directory with PERMISO_CONFIG_PATH) and then from environment variables,
// which take precedence. Every attribute remembers whether its value came
// from the default, the file, or the environment.
//
// # Key Configuration Options
//
//   - DATABASE_URL: permission records database connection
//   - PERMISO_AUDIT_DATABASE_URL: audit messages database connection
//   - PERMISO_AUDIT_ENABLED: audit event emission
//   - PERMISO_INVITATION_TTL_HOURS: default invitation lifetime
//   - PERMISO_POLICY_PATH: defaults policy applied at startup
package config
