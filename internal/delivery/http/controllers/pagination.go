package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxPage keeps (page-1)*size well inside int range for any input.
const maxPage = 1_000_000

// pageParams reads the page-number pagination query ("?page=N", 1-based)
// and converts it to a limit/offset pair. Bad or absent values fall back
// to page 1.
func pageParams(c *gin.Context, pageSize int) (limit, offset, page int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return pageSize, (page - 1) * pageSize, page
}

// pageEnvelope is the paginated list response body. The next and previous
// links mirror the request URL with an adjusted page parameter and are null
// at the ends of the list.
func pageEnvelope(c *gin.Context, count, page, pageSize int, results any) gin.H {
	var next, previous any
	if page*pageSize < count {
		next = pageLink(c, page+1)
	}
	if page > 1 {
		previous = pageLink(c, page-1)
	}
	return gin.H{"count": count, "next": next, "previous": previous, "results": results}
}

func pageLink(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
