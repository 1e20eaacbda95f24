package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"github.com/stitch-n-style/stitch-n-style-api/utils"
)

// Up to four catalog images per product
const maxProductImages = 4

// validateProductForm checks the multipart form fields for add/edit
func validateProductForm(c *gin.Context) (models.Product, []string) {
	var errs []string

	name := c.PostForm("name")
	if len(name) < 3 {
		errs = append(errs, "Name must be at least 3 characters long")
	}

	description := c.PostForm("description")
	if len(description) < 10 {
		errs = append(errs, "Description must be at least 10 characters long")
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		errs = append(errs, "Price must be a positive number")
	}

	category := c.PostForm("category")
	if category == "" {
		errs = append(errs, "Category is required")
	}

	var sizes models.StringSlice
	if raw := c.PostForm("sizes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
			errs = append(errs, "Sizes must be a JSON array")
		}
	}

	return models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		SubCategory: c.PostForm("subCategory"),
		Sizes:       sizes,
		BestSeller:  c.PostForm("bestSeller") == "true",
	}, errs
}

// uploadProductImages uploads the image1..image4 form files to the media host
func uploadProductImages(c *gin.Context) (models.StringSlice, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	images := make(models.StringSlice, 0, maxProductImages)
	for i := 1; i <= maxProductImages; i++ {
		files := form.File["image"+strconv.Itoa(i)]
		if len(files) == 0 {
			continue
		}
		asset, err := services.GetImageService().UploadImage(files[0], "products")
		if err != nil {
			return nil, err
		}
		images = append(images, asset.URL)
	}

	return images, nil
}

// AddProduct handles POST /api/product/add - admin catalog creation with up
// to four images
func AddProduct(c *gin.Context) {
	product, validationErrs := validateProductForm(c)
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid product data",
			"errors":  validationErrs,
		})
		return
	}

	images, err := uploadProductImages(c)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": uploadErr.Message,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to upload product images",
		})
		return
	}
	product.Images = images

	if err := config.GetDB().Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to add product",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product added successfully",
		"product": product,
	})
}

// ListProducts handles GET /api/product/list - the full catalog, newest first
func ListProducts(c *gin.Context) {
	var products []models.Product
	if err := config.GetDB().Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// SingleProduct handles GET /api/product/:productId - one catalog item
func SingleProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid product ID is required",
		})
		return
	}

	var product models.Product
	if err := config.GetDB().First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// EditProduct handles PUT /api/product/:productId - admin catalog update;
// images are replaced only when new ones are uploaded
func EditProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid product ID is required",
		})
		return
	}

	var product models.Product
	if err := config.GetDB().First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Product not found",
		})
		return
	}

	update, validationErrs := validateProductForm(c)
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid product data",
			"errors":  validationErrs,
		})
		return
	}

	images, err := uploadProductImages(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to upload product images",
		})
		return
	}

	product.Name = update.Name
	product.Description = update.Description
	product.Price = update.Price
	product.Category = update.Category
	product.SubCategory = update.SubCategory
	product.Sizes = update.Sizes
	product.BestSeller = update.BestSeller
	if len(images) > 0 {
		product.Images = images
	}

	if err := config.GetDB().Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// RemoveProduct handles DELETE /api/product/:productId - admin soft delete
func RemoveProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid product ID is required",
		})
		return
	}

	result := config.GetDB().Delete(&models.Product{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete product",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
