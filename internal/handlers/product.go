package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/upload"
)

const defaultImage = "default.jpg"

type ProductHandler struct {
	Products repository.ProductRepo
	Uploads  upload.Store
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

type ProductForm struct {
	Name        string  `form:"name"  validate:"required"`
	Price       float64 `form:"price" validate:"gte=0"`
	Description string  `form:"description"`
}

func (h *ProductHandler) Home(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "page.html", viewData(c, map[string]any{
		"products": products,
	}))
}

func (h *ProductHandler) ProductDetail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	product, err := h.Products.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "product_detail.html", viewData(c, map[string]any{
		"product": product,
	}))
}

func (h *ProductHandler) AdminDashboard(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "admin_dashboard.html", viewData(c, map[string]any{
		"products": products,
	}))
}

func (h *ProductHandler) AddProductPage(c echo.Context) error {
	return c.Render(http.StatusOK, "add_product.html", viewData(c, nil))
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	sess := session.FromContext(c)

	var req ProductForm
	if err := c.Bind(&req); err != nil {
		sess.AddFlash("Invalid product data.", "error")
		return c.Redirect(http.StatusFound, "/add_product")
	}
	if err := c.Validate(&req); err != nil {
		sess.AddFlash("Name is required and price must not be negative.", "error")
		return c.Redirect(http.StatusFound, "/add_product")
	}

	filename, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if filename == "" {
		filename = defaultImage
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Img:         filename,
	}
	if err := h.Products.Create(c.Request().Context(), &prod); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.indexProduct(c, &prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	sess.AddFlash("Product added successfully!", "success")
	return c.Redirect(http.StatusFound, "/")
}

func (h *ProductHandler) EditProductPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	product, err := h.Products.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "edit_product.html", viewData(c, map[string]any{
		"product": product,
	}))
}

func (h *ProductHandler) EditProduct(c echo.Context) error {
	sess := session.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	prod, err := h.Products.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req ProductForm
	if err := c.Bind(&req); err != nil {
		sess.AddFlash("Invalid product data.", "error")
		return c.Redirect(http.StatusFound, "/edit_product/"+c.Param("id"))
	}
	if err := c.Validate(&req); err != nil {
		sess.AddFlash("Name is required and price must not be negative.", "error")
		return c.Redirect(http.StatusFound, "/edit_product/"+c.Param("id"))
	}

	prod.Name = req.Name
	prod.Price = req.Price
	prod.Description = req.Description

	// the image only changes when a new file was uploaded
	filename, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if filename != "" {
		prod.Img = filename
	}

	if err := h.Products.Update(c.Request().Context(), prod); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.indexProduct(c, prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	sess.AddFlash("Product updated successfully!", "success")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sess := session.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	if err := h.Products.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, h.Index, uint(id)); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	sess.AddFlash("Product deleted successfully!", "success")
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

// saveImage stores the uploaded "img" file, returning the sanitized
// filename or "" when no usable file came with the request.
func (h *ProductHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("img")
	if err != nil || file.Filename == "" {
		return "", nil
	}

	filename := upload.SecureFilename(file.Filename)
	if filename == "" {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := h.Uploads.Save(filename, src); err != nil {
		return "", err
	}
	return filename, nil
}

func (h *ProductHandler) indexProduct(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, prod); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}
