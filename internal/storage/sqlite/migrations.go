package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist. Share rows cascade away with
// their parent bill or contact.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_admin INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    country_code TEXT NOT NULL DEFAULT '+91',
    whatsapp_number TEXT NOT NULL,
    avatar TEXT NOT NULL DEFAULT 'avatar1.png',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    restaurant_name TEXT NOT NULL,
    visit_date TEXT NOT NULL,
    base_amount REAL NOT NULL,
    discount_amount REAL NOT NULL DEFAULT 0,
    service_charge REAL NOT NULL DEFAULT 0,
    tax_amount REAL NOT NULL,
    total_amount REAL NOT NULL,
    bill_image TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bill_shares (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    contact_id TEXT NOT NULL,
    food_item TEXT NOT NULL,
    food_amount REAL NOT NULL,
    tax_share REAL NOT NULL,
    service_charge_share REAL NOT NULL DEFAULT 0,
    total_share REAL NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    shared_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE,
    FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_user_id ON contacts(user_id);
CREATE INDEX IF NOT EXISTS idx_bills_user_id ON bills(user_id);
CREATE INDEX IF NOT EXISTS idx_bill_shares_bill_id ON bill_shares(bill_id);
CREATE INDEX IF NOT EXISTS idx_bill_shares_contact_id ON bill_shares(contact_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
