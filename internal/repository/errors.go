package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound indica que ningún documento coincide con el filtro.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate indica una violación de índice único.
	ErrDuplicate = errors.New("duplicate document")
)

// translate convierte errores del driver en errores del repositorio.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
