// Package audit provides security audit logging for permission mutations
// and access decisions.
//
// Events are written in RFC5424 syslog format and optionally persisted to a
// dedicated audit database. There is no package-level logger: construct a
// Logger and hand it to the sharing workflow or CLI.
//
//	store, _ := audit.NewStore(cfg.AuditDatabaseURL)
//	logger := audit.NewLogger(os.Stdout, store)
//	logger.Log(audit.GrantEvent{GrantedBy: "admin", Scope: key.Describe(), Permissions: perms})
package audit
