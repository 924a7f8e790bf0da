package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos por entidad (producto faltante, stock insuficiente) se envuelven
// con fmt.Errorf("%w: <id>", ...) para conservar el detalle sin perder el sentinel.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	ErrTxConflict         = errors.New("conflicto de transacción")
)
