package postgres

import (
	"database/sql"

	"parkslot-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		VehicleRepository: NewVehicleRepository(db),
		LedgerRepository:  NewLedgerRepository(db),
	}
}
