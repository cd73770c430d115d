package dto

// ProductFilters narrows and pages a product listing. Filters never mutate
// stored data; they are query-time only.
type ProductFilters struct {
	// Search matches as a substring against name OR sku. Case sensitivity is
	// backend-defined: ILIKE on postgres, LIKE (ASCII-insensitive) on sqlite.
	Search string
	// MinQty/MaxQty are inclusive bounds; nil means unbounded.
	MinQty *int64
	MaxQty *int64
	// Sort is one of id|name|price|qty suffixed _asc|_desc. Anything else
	// silently falls back to id_asc.
	Sort string
	Skip int
	Take int
}

type TransactionFilters struct {
	Skip int
	Take int
}
