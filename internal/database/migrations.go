package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createPackagesTable,
		createBookingsTable,
		createReviewsTable,
		createCarouselItemsTable,
		createBookingIndexes,
		createReviewIndexes,
		createPackageIndexes,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255),
    first_name VARCHAR(100),
    last_name VARCHAR(100),
    photo_url TEXT,
    google_id VARCHAR(255) UNIQUE,
    provider VARCHAR(20) NOT NULL DEFAULT 'LOCAL',
    role VARCHAR(10) NOT NULL DEFAULT 'USER',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('ADMIN', 'USER')),
    CHECK (provider IN ('LOCAL', 'GOOGLE'))
);`

const createPackagesTable = `
CREATE TABLE IF NOT EXISTS packages (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title VARCHAR(500) NOT NULL,
    slug VARCHAR(500) UNIQUE NOT NULL,
    description TEXT,
    short_description TEXT,
    price DECIMAL(10,2) NOT NULL,
    original_price DECIMAL(10,2),
    currency VARCHAR(3) NOT NULL DEFAULT 'USD',
    duration INTEGER NOT NULL DEFAULT 1,
    max_guests INTEGER,
    min_age INTEGER,
    difficulty VARCHAR(20),
    category VARCHAR(20),
    location_name VARCHAR(255) NOT NULL,
    country VARCHAR(100),
    coordinates VARCHAR(100),
    images TEXT[] NOT NULL DEFAULT '{}',
    cover_image TEXT,
    highlights TEXT[] NOT NULL DEFAULT '{}',
    includes TEXT[] NOT NULL DEFAULT '{}',
    excludes TEXT[] NOT NULL DEFAULT '{}',
    itinerary JSONB,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    is_available BOOLEAN NOT NULL DEFAULT TRUE,
    available_from TIMESTAMP,
    available_to TIMESTAMP,
    tags TEXT[] NOT NULL DEFAULT '{}',
    rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    review_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (duration >= 1),
    CHECK (difficulty IS NULL OR difficulty IN ('EASY', 'MODERATE', 'CHALLENGING', 'EXTREME'))
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    user_id UUID NOT NULL REFERENCES users(id),
    package_id UUID NOT NULL REFERENCES packages(id),
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP,
    guests INTEGER NOT NULL DEFAULT 1,
    guest_names TEXT[] NOT NULL DEFAULT '{}',
    contact_info JSONB,
    notes TEXT,
    total_price DECIMAL(10,2) NOT NULL DEFAULT 0,
    currency VARCHAR(3) NOT NULL DEFAULT 'USD',
    status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
    payment_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
    payment_id VARCHAR(255),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (guests >= 1),
    CHECK (status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'COMPLETED')),
    CHECK (payment_status IN ('PENDING', 'PAID', 'FAILED', 'REFUNDED'))
);`

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    user_id UUID NOT NULL REFERENCES users(id),
    package_id UUID NOT NULL REFERENCES packages(id),
    booking_id UUID REFERENCES bookings(id),
    rating INTEGER NOT NULL,
    title VARCHAR(255),
    comment TEXT,
    images TEXT[] NOT NULL DEFAULT '{}',
    is_approved BOOLEAN NOT NULL DEFAULT TRUE,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    helpful_votes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE (user_id, package_id),
    CHECK (rating BETWEEN 1 AND 5)
);`

const createCarouselItemsTable = `
CREATE TABLE IF NOT EXISTS carousel_items (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    image_url TEXT NOT NULL,
    action_type VARCHAR(10) NOT NULL DEFAULT 'INTERNAL',
    action_value TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (action_type IN ('INTERNAL', 'EXTERNAL'))
);`

const createBookingIndexes = `
CREATE INDEX IF NOT EXISTS bookings_user_id_idx ON bookings (user_id);
CREATE INDEX IF NOT EXISTS bookings_package_id_idx ON bookings (package_id);
CREATE INDEX IF NOT EXISTS bookings_status_idx ON bookings (status);`

const createReviewIndexes = `
CREATE INDEX IF NOT EXISTS reviews_package_approved_idx ON reviews (package_id, is_approved);`

const createPackageIndexes = `
CREATE INDEX IF NOT EXISTS packages_rating_idx ON packages (rating DESC, review_count DESC);
CREATE INDEX IF NOT EXISTS packages_category_idx ON packages (category);`
