// Package graphql declares the executable schema: the entity type graph,
// the input validators, and the resolver layer that walks client selection
// trees against it. The schema is built once at startup and is immutable
// afterwards; hot reload means rebuilding and swapping the whole structure.
package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/tavola/app/repositories"
	"github.com/shashiranjanraj/tavola/app/services"
	"github.com/shashiranjanraj/tavola/config"
	"github.com/shashiranjanraj/tavola/pkg/auth"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/metrics"
	"github.com/shashiranjanraj/tavola/pkg/policy"
	"github.com/shashiranjanraj/tavola/pkg/store"
	"github.com/shashiranjanraj/tavola/pkg/workerpool"
)

// Resolver holds the collaborators every field resolver needs: typed
// repositories over the store, the domain services, and the shared pool
// that bounds fan-out fetches.
type Resolver struct {
	users  *repositories.UserRepository
	items  *repositories.ItemRepository
	orders *repositories.OrderRepository

	auth     *services.AuthService
	orderSvc *services.OrderService
	menu     *services.MenuService

	pool *workerpool.Pool
}

// NewResolver wires repositories and services over the given store.
func NewResolver(st store.Store) *Resolver {
	pool := workerpool.New(config.ResolvePoolSize())

	users := repositories.NewUserRepository(st)
	items := repositories.NewItemRepository(st, pool)
	orders := repositories.NewOrderRepository(st)

	return &Resolver{
		users:    users,
		items:    items,
		orders:   orders,
		auth:     services.NewAuthService(users),
		orderSvc: services.NewOrderService(orders, items),
		menu:     services.NewMenuService(items),
		pool:     pool,
	}
}

// Close releases the resolver's worker pool.
func (r *Resolver) Close() {
	r.pool.Shutdown()
}

// schemaTypes bundles the output object types so the root builders can
// reference them after the cross-type edges are wired.
type schemaTypes struct {
	item        *graphql.Object
	user        *graphql.Object
	order       *graphql.Object
	menu        *graphql.Object
	authPayload *graphql.Object
}

// NewSchema builds the executable schema for one resolver instance.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := r.newTypes()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.newRootQuery(t),
		Mutation: r.newRootMutation(t),
	})
}

// Execute runs one request against the schema. ctx carries the
// transport-supplied credential and cancellation.
func Execute(ctx context.Context, schema graphql.Schema, query, operationName string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		OperationName:  operationName,
		VariableValues: variables,
		Context:        ctx,
	})
}

// credential returns the caller's token: the explicit webtoken argument
// when present, else the per-request credential installed by the transport.
func credential(p graphql.ResolveParams) string {
	if token, ok := p.Args["webtoken"].(string); ok && token != "" {
		return token
	}
	return policy.CredentialFromCtx(p.Context)
}

// gate consults the authorization policy for a root operation.
func (r *Resolver) gate(p graphql.ResolveParams, operation string) (*auth.Claims, error) {
	return policy.Authorize(operation, credential(p))
}

// timed wraps a root resolver with per-operation metrics.
func timed(operation string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		out, err := resolve(p)
		metrics.ObserveOperation(operation, time.Since(start))

		if err != nil {
			code := faults.CodeInternal
			var f *faults.Fault
			if errors.As(err, &f) {
				code = f.Code
			}
			metrics.ObserveOperationError(operation, code)
		}
		return out, err
	}
}
