package installer

import (
	"net/url"
	"strconv"
)

type Filters struct {
	Query        string
	Location     string
	Trade        string
	Experience   string
	Availability string
	Sort         string
	Page         int
	Limit        int
}

// ParseFiltersFromQuery extracts installer search parameters. Unrecognized
// experience buckets and availability values apply no filter downstream.
func ParseFiltersFromQuery(query url.Values) Filters {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	sort := query.Get("sort")
	if sort == "" {
		sort = SortNewest
	}

	return Filters{
		Query:        query.Get("q"),
		Location:     query.Get("location"),
		Trade:        query.Get("trade"),
		Experience:   query.Get("experience"),
		Availability: query.Get("availability"),
		Sort:         sort,
		Page:         page,
		Limit:        limit,
	}
}
