package dto

type CreateCategoryRequest struct {
	Title string `json:"title"`
}

type UpdateCategoryRequest struct {
	Title string `json:"title"`
}

type CreateItemRequest struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	IconURL *string `json:"iconUrl"`
}

// UpdateItemRequest carries a partial update; field presence, not value
// truthiness, decides what gets applied.
type UpdateItemRequest struct {
	Name    *string `json:"name"`
	URL     *string `json:"url"`
	IconURL *string `json:"iconUrl"`
}

// ReorderRequest moves the item at FromIndex to ToIndex (splice semantics).
// Pointers so that absent fields can be rejected with 400.
type ReorderRequest struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}
