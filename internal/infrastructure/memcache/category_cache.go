package memcache

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	gocache "github.com/patrickmn/go-cache"
)

// CategoryCache caché en memoria de DTOs de categoría con TTL fijo.
// Guarda copias de DTOs, nunca entidades, y vive solo dentro del proceso:
// arranca vacía y no hay persistencia ni invalidación entre instancias
// (limitación asumida del despliegue de una sola instancia). go-cache es
// seguro para acceso concurrente desde varias operaciones en vuelo.
type CategoryCache struct {
	c *gocache.Cache
}

// New crea la caché con el TTL indicado; la limpieza de expirados corre al
// doble del TTL.
func New(ttl time.Duration) *CategoryCache {
	return &CategoryCache{c: gocache.New(ttl, 2*ttl)}
}

// Get busca una categoría por clave ("category_{id}").
func (m *CategoryCache) Get(key string) (*dto.CategoryResponse, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	item, ok := v.(dto.CategoryResponse)
	if !ok {
		return nil, false
	}
	return &item, true
}

// Set guarda una categoría con el TTL por defecto.
func (m *CategoryCache) Set(key string, item dto.CategoryResponse) {
	m.c.SetDefault(key, item)
}

// GetList busca una página de categorías por clave ("categories_page_{p}_size_{s}").
func (m *CategoryCache) GetList(key string) ([]dto.CategoryResponse, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]dto.CategoryResponse)
	if !ok {
		return nil, false
	}
	return list, true
}

// SetList guarda una página de categorías con el TTL por defecto.
func (m *CategoryCache) SetList(key string, items []dto.CategoryResponse) {
	m.c.SetDefault(key, items)
}

// Invalidate vacía la caché completa tras una mutación de categorías.
// Política deliberada: las claves derivan de la forma de la consulta y esta
// caché solo contiene entradas de categorías, así que vaciarla es exacto y
// evita servir nombres viejos durante la ventana del TTL.
func (m *CategoryCache) Invalidate() {
	m.c.Flush()
}
