// Package audit appends entries to a user's audit log.
//
// Logger.Log builds an Event (user, operation, initiator, network origin and
// a free-form info payload), validates it and hands it to a Storage. Storage
// implementations only append: MongoStorage inserts into the
// userAuditLogEntries collection, MemoryStorage keeps events in a slice for
// tests.
//
// GroupSSOAdapter exposes a Logger as groupsso.AuditLogger:
//
//	auditLog := audit.NewLogger(audit.NewMongoStorage(db))
//	enroller := groupsso.NewEnroller(store, audit.NewGroupSSOAdapter(auditLog))
//
// Storage errors are returned unchanged; the logger never retries.
package audit
