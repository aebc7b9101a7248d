package job

import (
	"net/url"
	"strconv"
)

type Filters struct {
	Query    string
	Location string
	Trade    string
	JobType  string
	PayMin   int
	PayMax   int
	Sort     string
	Page     int
	Limit    int
}

// ParseFiltersFromQuery extracts job search parameters. Values that fail
// to parse fall back to their defaults rather than rejecting the request.
func ParseFiltersFromQuery(query url.Values) Filters {
	// If we can't convert the string to an int we're happy leaving the zero values
	payMin, _ := strconv.Atoi(query.Get("payMin"))
	payMax, _ := strconv.Atoi(query.Get("payMax"))

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
	jobType := query.Get("jobType")
	if jobType == "" {
		jobType = query.Get("type")
	}

	return Filters{
		Query:    query.Get("q"),
		Location: query.Get("location"),
		Trade:    query.Get("trade"),
		JobType:  jobType,
		PayMin:   payMin,
		PayMax:   payMax,
		Sort:     sort,
		Page:     page,
		Limit:    limit,
	}
}
