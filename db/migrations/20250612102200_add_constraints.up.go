package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		// Every delete policy below is also executed explicitly inside the
		// owning transaction by the service layer; the constraints are the
		// database-level backstop.
		sql := `
			ALTER TABLE auth_tokens
				ADD CONSTRAINT fk_auth_tokens_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;

			ALTER TABLE clients
				ADD CONSTRAINT fk_clients_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;

			ALTER TABLE invoices
				ADD CONSTRAINT fk_invoices_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;
			ALTER TABLE invoices
				ADD CONSTRAINT fk_invoices_client
				FOREIGN KEY (client_id) REFERENCES clients (id) ON DELETE CASCADE;

			ALTER TABLE invoice_items
				ADD CONSTRAINT fk_invoice_items_invoice
				FOREIGN KEY (invoice_id) REFERENCES invoices (id) ON DELETE CASCADE;

			ALTER TABLE time_entries
				ADD CONSTRAINT fk_time_entries_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;
			ALTER TABLE time_entries
				ADD CONSTRAINT fk_time_entries_client
				FOREIGN KEY (client_id) REFERENCES clients (id) ON DELETE SET NULL;
			ALTER TABLE time_entries
				ADD CONSTRAINT fk_time_entries_invoice
				FOREIGN KEY (invoice_id) REFERENCES invoices (id) ON DELETE SET NULL;

			ALTER TABLE expenses
				ADD CONSTRAINT fk_expenses_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;

			ALTER TABLE payments
				ADD CONSTRAINT fk_payments_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;
			ALTER TABLE payments
				ADD CONSTRAINT fk_payments_invoice
				FOREIGN KEY (invoice_id) REFERENCES invoices (id) ON DELETE CASCADE;

			ALTER TABLE tax_estimations
				ADD CONSTRAINT fk_tax_estimations_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;

			ALTER TABLE settings
				ADD CONSTRAINT fk_settings_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;

			ALTER TABLE audit_logs
				ADD CONSTRAINT fk_audit_logs_user
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE SET NULL;
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
