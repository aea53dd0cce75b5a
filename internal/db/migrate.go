package db

import "database/sql"

// EnsureSchema creates the portal tables when missing. Safe to run on every
// startup.
func EnsureSchema(database *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	client_name VARCHAR(255) NOT NULL,
	client_phone VARCHAR(100) NOT NULL,
	client_email VARCHAR(255) NULL,
	job_address VARCHAR(500) NULL,
	postcode VARCHAR(20) NULL,
	job_type VARCHAR(255) NOT NULL,
	tank_size VARCHAR(100) NULL,
	waste_type VARCHAR(255) NULL,
	portaloo_numbers TEXT NULL,
	portaloo_colour VARCHAR(50) NULL,
	special_notes TEXT NULL,
	dropoff_date DATE NULL,
	pickup_date DATE NULL,
	service_date DATE NULL,
	assigned_driver TEXT NULL,
	payment_status VARCHAR(20) NULL,
	payment_method VARCHAR(20) NULL,
	completed TINYINT(1) NOT NULL DEFAULT 0,
	completed_at TIMESTAMP NULL,
	is_archived TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bookings_archived (is_archived)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS portaloos (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	status VARCHAR(20) NOT NULL DEFAULT 'Available',
	price DECIMAL(10,2) NULL,
	rental_start_date DATE NULL,
	rental_end_date DATE NULL,
	location VARCHAR(500) NULL,
	notes TEXT NULL,
	colour VARCHAR(50) NULL,
	paid_status VARCHAR(20) NULL,
	KEY idx_portaloos_status (status),
	KEY idx_portaloos_end_date (rental_end_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS waste_transfer_notes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	client_name VARCHAR(255) NULL,
	description_of_waste TEXT NULL,
	quantity VARCHAR(100) NULL,
	carrier_name VARCHAR(255) NULL,
	carrier_reg_no VARCHAR(100) NULL,
	producer_name VARCHAR(255) NULL,
	producer_address VARCHAR(500) NULL,
	receiver_name VARCHAR(255) NULL,
	receiver_address VARCHAR(500) NULL,
	date_created DATE NULL,
	notes TEXT NULL,
	signature_url VARCHAR(1000) NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_wtn_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, ddl := range ddls {
		if _, err := database.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
