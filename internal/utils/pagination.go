package utils

import "strconv"

// PageSize is the fixed number of records shown per listing page.
const PageSize = 10

// Page describes one bounded window into a listing. Number is the
// 1-based page actually served, NumPages is ceil(count/PageSize) and
// Pages lists every valid page number for rendering a pager.
type Page struct {
	Number   int   // the page being served (1-based)
	Count    int   // total number of records in the collection
	NumPages int   // total number of pages
	Pages    []int // all valid page numbers, 1..NumPages
	Offset   int   // SQL offset for this page
	Limit    int   // SQL limit for this page
}

// Paginate computes the page window for a collection of count records
// given the raw ?page= query value. A missing or unparsable value
// defaults to page 1 and out-of-range numbers are clamped to the
// nearest valid page. An empty collection yields page 1 with zero
// pages and no records.
func Paginate(count int, rawPage string) Page {
	num, err := strconv.Atoi(rawPage)
	if err != nil || rawPage == "" {
		num = 1
	}

	numPages := (count + PageSize - 1) / PageSize
	if num < 1 {
		num = 1
	}
	if numPages > 0 && num > numPages {
		num = numPages
	}

	pages := make([]int, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pages = append(pages, i)
	}

	return Page{
		Number:   num,
		Count:    count,
		NumPages: numPages,
		Pages:    pages,
		Offset:   (num - 1) * PageSize,
		Limit:    PageSize,
	}
}
