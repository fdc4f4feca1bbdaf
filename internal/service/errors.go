package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error taxonomy for the inventory ledger. Validation failures abort before
// any write; persistence failures surface after the fact with whatever state
// resulted. No operation retries automatically.

// ValidationError reports malformed input. Operations return it before
// touching storage, so the caller can correct the input and retry.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func errValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError (including
// InsufficientStockError).
func IsValidation(err error) bool {
	var ve *ValidationError
	var se *InsufficientStockError
	return errors.As(err, &ve) || errors.As(err, &se)
}

// InsufficientStockError is raised at commit time when the re-validated stock
// of a product is less than the requested quantity. It short-circuits the
// whole sale before (or while rolling back) any write.
type InsufficientStockError struct {
	Producto   string
	Solicitado int
	Disponible int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.Producto, e.Solicitado, e.Disponible)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var se *InsufficientStockError
	return errors.As(err, &se)
}

// PartialCommitError records how far a multi-step write got before a
// persistence failure, to support manual reconciliation. The sale commit
// itself runs in one transaction and cannot partially apply; this error only
// surfaces from best-effort paths that write outside a transaction.
type PartialCommitError struct {
	VentaID  uuid.UUID
	LineasOK int
	Err      error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("venta %s: fallo tras %d lineas aplicadas: %v", e.VentaID, e.LineasOK, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
