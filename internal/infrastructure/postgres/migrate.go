package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the tables the store needs. Line items live as JSONB on
// the document row: they are owned by the document, copied verbatim on
// conversion and never queried independently.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	kra_pin      TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	credit_limit NUMERIC(20,2) NOT NULL DEFAULT 0,
	balance      NUMERIC(20,2) NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	sku             TEXT NOT NULL UNIQUE,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	selling_price   NUMERIC(20,2) NOT NULL DEFAULT 0,
	taxable         BOOLEAN NOT NULL DEFAULT FALSE,
	tax_rate        NUMERIC(10,4) NOT NULL DEFAULT 0,
	track_inventory BOOLEAN NOT NULL DEFAULT FALSE,
	current_stock   NUMERIC(20,4) NOT NULL DEFAULT 0,
	reserved_stock  NUMERIC(20,4) NOT NULL DEFAULT 0,
	available_stock NUMERIC(20,4) NOT NULL DEFAULT 0,
	reorder_level   NUMERIC(20,4) NOT NULL DEFAULT 0,
	min_stock       NUMERIC(20,4) NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	id                    TEXT PRIMARY KEY,
	kind                  TEXT NOT NULL,
	number                TEXT NOT NULL UNIQUE,
	customer_id           TEXT NOT NULL REFERENCES customers(id),
	items                 JSONB NOT NULL DEFAULT '[]',
	subtotal              NUMERIC(20,2) NOT NULL DEFAULT 0,
	discount_amount       NUMERIC(20,2) NOT NULL DEFAULT 0,
	vat_amount            NUMERIC(20,2) NOT NULL DEFAULT 0,
	additional_tax_amount NUMERIC(20,2) NOT NULL DEFAULT 0,
	total                 NUMERIC(20,2) NOT NULL DEFAULT 0,
	status                TEXT NOT NULL,
	issue_date            TIMESTAMPTZ NOT NULL,
	valid_until           TIMESTAMPTZ,
	due_date              TIMESTAMPTZ,
	notes                 TEXT NOT NULL DEFAULT '',
	converted_to_id       TEXT NOT NULL DEFAULT '',
	converted_to_number   TEXT NOT NULL DEFAULT '',
	converted_at          TIMESTAMPTZ,
	amount_paid           NUMERIC(20,2) NOT NULL DEFAULT 0,
	balance               NUMERIC(20,2) NOT NULL DEFAULT 0,
	etims_status          TEXT NOT NULL DEFAULT '',
	reason                TEXT NOT NULL DEFAULT '',
	invoice_id            TEXT NOT NULL DEFAULT '',
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_kind_status ON documents (kind, status);

CREATE TABLE IF NOT EXISTS payments (
	id          TEXT PRIMARY KEY,
	invoice_id  TEXT NOT NULL REFERENCES documents(id),
	customer_id TEXT NOT NULL,
	amount      NUMERIC(20,2) NOT NULL,
	method      TEXT NOT NULL,
	reference   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_invoice ON payments (invoice_id);

CREATE TABLE IF NOT EXISTS stock_movements (
	id             TEXT PRIMARY KEY,
	product_id     TEXT NOT NULL REFERENCES products(id),
	type           TEXT NOT NULL,
	quantity       NUMERIC(20,4) NOT NULL,
	previous_stock NUMERIC(20,4) NOT NULL,
	new_stock      NUMERIC(20,4) NOT NULL,
	reference      TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id);

CREATE TABLE IF NOT EXISTS document_sequences (
	kind  TEXT NOT NULL,
	year  INT  NOT NULL,
	value INT  NOT NULL DEFAULT 0,
	PRIMARY KEY (kind, year)
);
`

// Migrate applies the schema. Idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
