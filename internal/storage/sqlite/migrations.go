package sqlite

import (
	"database/sql"
	"fmt"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Money columns are TEXT holding decimal strings so no precision is lost.
const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    number TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    price_per_night TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
    id TEXT PRIMARY KEY,
    guest_name TEXT NOT NULL,
    check_in INTEGER NOT NULL,
    check_out INTEGER NOT NULL,
    custom_price TEXT NOT NULL DEFAULT '',
    is_group_booking INTEGER NOT NULL DEFAULT 0,
    room_id TEXT,
    advance_amount TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id)
);

CREATE TABLE IF NOT EXISTS booking_rooms (
    booking_id TEXT NOT NULL,
    room_id TEXT NOT NULL,
    PRIMARY KEY (booking_id, room_id),
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE,
    FOREIGN KEY (room_id) REFERENCES rooms(id)
);

CREATE TABLE IF NOT EXISTS food_orders (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL,
    items TEXT NOT NULL DEFAULT '',
    total_amount TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS extra_services (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL,
    nights INTEGER NOT NULL,
    room_charges TEXT NOT NULL,
    food_charges TEXT NOT NULL,
    extra_charges TEXT NOT NULL,
    subtotal TEXT NOT NULL,
    room_gst TEXT NOT NULL DEFAULT '0.00',
    food_gst TEXT NOT NULL DEFAULT '0.00',
    gst_amount TEXT NOT NULL,
    service_charge_amount TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    advance_paid TEXT NOT NULL,
    balance_amount TEXT NOT NULL,
    payment_method TEXT NOT NULL,
    payment_status TEXT NOT NULL,
    due_date INTEGER NOT NULL DEFAULT 0,
    pending_reason TEXT NOT NULL DEFAULT '',
    amount_in_words TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id)
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_booking_rooms_booking_id ON booking_rooms(booking_id);
CREATE INDEX IF NOT EXISTS idx_food_orders_booking_id ON food_orders(booking_id);
CREATE INDEX IF NOT EXISTS idx_extra_services_booking_id ON extra_services(booking_id);
CREATE INDEX IF NOT EXISTS idx_bills_booking_id ON bills(booking_id);
`

// addedColumns are columns introduced after a table was first released.
// CREATE TABLE IF NOT EXISTS leaves older databases without them.
var addedColumns = []struct {
	table, column, definition string
}{
	{"bills", "room_gst", "TEXT NOT NULL DEFAULT '0.00'"},
	{"bills", "food_gst", "TEXT NOT NULL DEFAULT '0.00'"},
}

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	for _, c := range addedColumns {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", c.table, c.column).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", c.table, err)
		}
		if n > 0 {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.definition)); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}
