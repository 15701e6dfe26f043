// Package history stores the calculation history of calculator screens.
//
// Store is the port the web layer depends on. MemoryStore keeps entries in
// process memory and SQLiteStore persists them to a SQLite database. Both
// retain only the newest entries per calculator.
package history
