package ports

import (
	"time"

	"github.com/deccantrails/tourbooker/internal/catalog"
	"github.com/deccantrails/tourbooker/internal/domain"
)

// Catalog is the read surface of the entity index.
type Catalog interface {
	Get(id string) (*domain.Entity, bool)
	Query(f catalog.Filter) ([]*domain.Entity, error)
}

// Clock abstracts the time source so refund cutoffs and future-start guards
// are testable.
type Clock interface {
	Now() time.Time
}
