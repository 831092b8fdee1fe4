package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	appgraphql "github.com/shashiranjanraj/tavola/app/graphql"
	"github.com/shashiranjanraj/tavola/pkg/bind"
	"github.com/shashiranjanraj/tavola/pkg/policy"
	"github.com/shashiranjanraj/tavola/pkg/response"
)

// gqlRequest is the standard GraphQL-over-HTTP request envelope.
type gqlRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler executes one request against the schema. The only value the
// transport contributes to the resolution context is the credential token.
func GraphQLHandler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		errs, err := bind.JSON(r, &req)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}

		ctx := policy.WithCredential(r.Context(), bearerToken(r))
		result := appgraphql.Execute(ctx, schema, req.Query, req.OperationName, req.Variables)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
