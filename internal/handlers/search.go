package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/service/search"
)

type SearchHandler struct {
	Products repository.ProductRepo
	ES       *elasticsearch.Client
	Index    string
}

// Search filters products by a case-insensitive name substring. The
// repository does the matching unless an Elasticsearch client is
// configured, which then serves the same query from its index.
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")

	var (
		products []models.Product
		err      error
	)
	if query != "" {
		if h.ES != nil {
			products, err = search.Search(c.Request().Context(), h.ES, h.Index, query)
		} else {
			products, err = h.Products.SearchByName(c.Request().Context(), query)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Render(http.StatusOK, "search_results.html", viewData(c, map[string]any{
		"query":    query,
		"products": products,
	}))
}
