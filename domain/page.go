package domain

// PageSize is the fixed number of entries per page window in all list views.
const PageSize = 10

// Page describes one window of a paginated listing. Offset and Limit are
// ready to be applied to the underlying query.
type Page struct {
	Number  int  `json:"number"`
	Count   int  `json:"count"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_previous"`

	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// PageOf computes the page window for a listing of totalItems entries.
// Out-of-range page numbers degrade to the nearest valid page: anything
// below 1 becomes the first page, anything beyond the end becomes the last.
// An empty listing still has one (empty) page.
func PageOf(totalItems, requested int) Page {
	count := (totalItems + PageSize - 1) / PageSize
	if count < 1 {
		count = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > count {
		number = count
	}
	return Page{
		Number:  number,
		Count:   count,
		HasNext: number < count,
		HasPrev: number > 1,
		Offset:  (number - 1) * PageSize,
		Limit:   PageSize,
	}
}
