package memcache_test

import (
	"testing"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCache_SetGet(t *testing.T) {
	c := memcache.New(time.Minute)

	item := dto.CategoryResponse{ID: 1, Name: "Novela", Order: 1}
	c.Set("category_1", item)

	got, ok := c.Get("category_1")
	require.True(t, ok)
	assert.Equal(t, item, *got)

	_, ok = c.Get("category_2")
	assert.False(t, ok, "clave ausente no acierta")
}

func TestCategoryCache_SetGetList(t *testing.T) {
	c := memcache.New(time.Minute)

	page := []dto.CategoryResponse{
		{ID: 1, Name: "Novela", Order: 1},
		{ID: 2, Name: "Historia", Order: 2},
	}
	c.SetList("categories_page_1_size_5", page)

	got, ok := c.GetList("categories_page_1_size_5")
	require.True(t, ok)
	assert.Equal(t, page, got)
}

func TestCategoryCache_InvalidateVaciaTodo(t *testing.T) {
	c := memcache.New(time.Minute)
	c.Set("category_1", dto.CategoryResponse{ID: 1, Name: "Novela"})
	c.SetList("categories_page_1_size_5", []dto.CategoryResponse{{ID: 1, Name: "Novela"}})

	c.Invalidate()

	_, ok := c.Get("category_1")
	assert.False(t, ok)
	_, ok = c.GetList("categories_page_1_size_5")
	assert.False(t, ok)
}

func TestCategoryCache_TTLExpira(t *testing.T) {
	c := memcache.New(20 * time.Millisecond)
	c.Set("category_1", dto.CategoryResponse{ID: 1, Name: "Novela"})

	_, ok := c.Get("category_1")
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("category_1")
	assert.False(t, ok, "pasado el TTL la entrada expira")
}
