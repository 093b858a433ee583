package stubserver

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type pageQuery struct {
	page, size int
}

type pageBody[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// pageParams reads page and page_size. It writes a 400/404 reply and returns
// false when they are unusable.
func pageParams(c *gin.Context) (pageQuery, bool) {
	q := pageQuery{page: 1, size: DefaultPageSize}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			notFound(c)
			return q, false
		}
		q.page = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid page_size"})
			return q, false
		}
		q.size = min(n, MaxPageSize)
	}
	return q, true
}

// writePage replies with one page of all. A page past the end is a 404, except
// page 1 of an empty list.
func writePage[T any](c *gin.Context, all []T, q pageQuery) {
	start := (q.page - 1) * q.size
	if start >= len(all) && q.page > 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}
	end := min(start+q.size, len(all))

	body := pageBody[T]{Count: len(all), Results: append([]T{}, all[start:end]...)}
	if end < len(all) {
		body.Next = pageLink(c, q.page+1)
	}
	if q.page > 1 {
		body.Previous = pageLink(c, q.page-1)
	}
	c.JSON(http.StatusOK, body)
}

func pageLink(c *gin.Context, page int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		notFound(c)
		return 0, false
	}
	return id, true
}
