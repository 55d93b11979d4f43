package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams are the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// FromContext parses paging parameters with sane bounds.
func FromContext(c echo.Context) QueryParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 || size > 100 {
		size = 20
	}
	return QueryParams{
		PageNumber: page,
		PageSize:   size,
		Search:     c.QueryParam("search"),
	}
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
