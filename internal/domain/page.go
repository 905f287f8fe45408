package domain

// Page is the pagination block every paged list response carries.
type Page struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// SinglePage describes an unpaged list of n items.
func SinglePage(n int) Page {
	p := Page{TotalCount: n, CurrentPage: 1}
	if n > 0 {
		p.TotalPages = 1
	}
	return p
}
