package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reuben-baek/relation-save/service"
)

func idParam(name, v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.InvalidInputError, name)
	}
	return uint(id), nil
}

func strategyQuery(c *gin.Context) (service.Strategy, error) {
	return service.ParseStrategy(c.Query("strategy"))
}

// created answers 201 with the location of the new resource under base.
func created(c *gin.Context, base string, id uint, body any) {
	c.Header("Location", fmt.Sprintf("%s/%d", base, id))
	c.JSON(http.StatusCreated, body)
}

// POST /categories
func CreateCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto service.CategoryDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			abortWithBadRequest(c, err)
			return
		}
		saved, err := categories.Insert(c.Request.Context(), dto)
		if err != nil {
			abortWithError(c, err)
			return
		}
		created(c, c.Request.URL.Path, saved.ID, saved)
	}
}

// GET /categories
func ListCategoriesHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := categories.FindAll(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// GET /categories/:id
func GetCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam("id", c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		found, err := categories.FindOne(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// POST /departments
func CreateDepartmentHandler(departments *service.DepartmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto service.DepartmentDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			abortWithBadRequest(c, err)
			return
		}
		saved, err := departments.Insert(c.Request.Context(), dto)
		if err != nil {
			abortWithError(c, err)
			return
		}
		created(c, c.Request.URL.Path, saved.ID, saved)
	}
}

// GET /departments
func ListDepartmentsHandler(departments *service.DepartmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := departments.FindAll(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// GET /departments/:id
func GetDepartmentHandler(departments *service.DepartmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam("id", c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		found, err := departments.FindOne(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// POST /products?strategy=reference|placeholder
func CreateProductHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		strategy, err := strategyQuery(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		var dto service.ProductDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			abortWithBadRequest(c, err)
			return
		}
		saved, err := products.Insert(c.Request.Context(), dto, strategy)
		if err != nil {
			abortWithError(c, err)
			return
		}
		created(c, c.Request.URL.Path, saved.ID, saved)
	}
}

// GET /products
// GET /products?categoryId=
func ListProductsHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var found []service.ProductDTO
		var err error
		if v, ok := c.GetQuery("categoryId"); ok {
			categoryID, perr := idParam("categoryId", v)
			if perr != nil {
				abortWithError(c, perr)
				return
			}
			found, err = products.FindByCategory(c.Request.Context(), categoryID)
		} else {
			found, err = products.FindAll(c.Request.Context())
		}
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// GET /products/:id
func GetProductHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam("id", c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		found, err := products.FindOne(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// POST /people?strategy=reference|placeholder
func CreatePersonHandler(people *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		strategy, err := strategyQuery(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		var dto service.PersonDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			abortWithBadRequest(c, err)
			return
		}
		saved, err := people.Insert(c.Request.Context(), dto, strategy)
		if err != nil {
			abortWithError(c, err)
			return
		}
		created(c, c.Request.URL.Path, saved.ID, saved)
	}
}

// POST /people/department?strategy=reference|placeholder
// The created person lives under /people.
func CreatePersonWithDepartmentHandler(people *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		strategy, err := strategyQuery(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		var dto service.PersonDepartmentDTO
		if err := c.ShouldBindJSON(&dto); err != nil {
			abortWithBadRequest(c, err)
			return
		}
		saved, err := people.InsertWithDepartment(c.Request.Context(), dto, strategy)
		if err != nil {
			abortWithError(c, err)
			return
		}
		created(c, "/people", saved.ID, saved)
	}
}

// GET /people?departmentId=
func ListPeopleHandler(people *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.GetQuery("departmentId")
		if !ok {
			abortWithError(c, fmt.Errorf("%w: departmentId is required", service.InvalidInputError))
			return
		}
		departmentID, err := idParam("departmentId", v)
		if err != nil {
			abortWithError(c, err)
			return
		}
		found, err := people.FindByDepartment(c.Request.Context(), departmentID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// GET /people/:id
func GetPersonHandler(people *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam("id", c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		found, err := people.FindOne(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}
