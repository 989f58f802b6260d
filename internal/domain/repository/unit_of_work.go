package repository

// UnitOfWork agrupa las mutaciones de una operación de servicio en un commit
// atómico. Expone un repositorio por entidad y todos comparten el mismo plan
// pendiente. Una instancia cubre una sola operación lógica y se descarta;
// no debe compartirse entre operaciones concurrentes.
type UnitOfWork interface {
	Categories() CategoryRepository
	Products() ProductRepository
	// SaveChanges aplica todas las mutaciones preparadas en una transacción:
	// o entran todas o ninguna. Los deletes preparados se convierten aquí, y
	// solo aquí, en is_deleted = TRUE (borrado lógico).
	SaveChanges() error
}

// UnitOfWorkFactory crea un UnitOfWork nuevo por operación.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
