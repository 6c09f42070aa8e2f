package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

type graphQLRequest struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables" form:"-"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

type GraphQLHandler struct {
	Schema graphql.Schema
	Log    logrus.FieldLogger
}

func NewGraphQLHandler(schema graphql.Schema, log logrus.FieldLogger) *GraphQLHandler {
	return &GraphQLHandler{Schema: schema, Log: log}
}

func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req graphQLRequest
	if c.Request.Method == http.MethodGet {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variables"})
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to decode body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})

	if len(result.Errors) != 0 {
		log := requestLogger(c, h.Log)
		for _, e := range result.Errors {
			log.WithField("path", e.Path).Warnf("graphql error response: %s", e.Message)
		}
	}

	c.JSON(http.StatusOK, result)
}
