package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"storefront/internal/api/handlers"
	"storefront/internal/gql"
)

func SetupRouter(schema graphql.Schema, products gql.ProductSource, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.AccessLog(log))

	graphQLHandler := handlers.NewGraphQLHandler(schema, log)
	productHandler := handlers.NewProductHandler(products)

	router.POST("/graphql", graphQLHandler.Serve)
	router.GET("/graphql", graphQLHandler.Serve)
	router.GET("/products", productHandler.ListProducts)
	router.GET("/product/:id", productHandler.GetProductById)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
