package web

import (
	"github.com/gin-gonic/gin"
	"github.com/reuben-baek/relation-save/metrics"
	"github.com/reuben-baek/relation-save/service"
)

type Services struct {
	Products    *service.ProductService
	People      *service.PersonService
	Categories  *service.CategoryService
	Departments *service.DepartmentService
}

func NewRouter(services Services) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	categories := r.Group("/categories")
	{
		categories.POST("", CreateCategoryHandler(services.Categories))
		categories.GET("", ListCategoriesHandler(services.Categories))
		categories.GET("/:id", GetCategoryHandler(services.Categories))
	}

	departments := r.Group("/departments")
	{
		departments.POST("", CreateDepartmentHandler(services.Departments))
		departments.GET("", ListDepartmentsHandler(services.Departments))
		departments.GET("/:id", GetDepartmentHandler(services.Departments))
	}

	products := r.Group("/products")
	{
		products.POST("", CreateProductHandler(services.Products))
		products.GET("", ListProductsHandler(services.Products))
		products.GET("/:id", GetProductHandler(services.Products))
	}

	people := r.Group("/people")
	{
		people.POST("", CreatePersonHandler(services.People))
		people.POST("/department", CreatePersonWithDepartmentHandler(services.People))
		people.GET("", ListPeopleHandler(services.People))
		people.GET("/:id", GetPersonHandler(services.People))
	}

	return r
}
