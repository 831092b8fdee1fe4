package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
	"github.com/shashiranjanraj/tavola/pkg/policy"
)

// webtokenArg is optional on purpose: callers either pass the token inline
// or let the transport install it from the Authorization header.
var webtokenArg = &graphql.ArgumentConfig{Type: graphql.String}

// newRootQuery declares the root read operations. Gated operations consult
// the policy table before touching the store; public reads skip it.
func (r *Resolver) newRootQuery(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"viewer": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{"webtoken": webtokenArg},
				Resolve: timed("viewer", func(p graphql.ResolveParams) (interface{}, error) {
					claims, err := r.gate(p, "viewer")
					if err != nil {
						return nil, err
					}

					user, err := r.users.ByID(p.Context, claims.Subject)
					if err != nil {
						logger.WithCtx(p.Context).Error("viewer lookup failed", "error", err)
						return nil, faults.Internal()
					}
					return user, nil
				}),
			},

			"user": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"webtoken": webtokenArg,
				},
				Resolve: timed("user", func(p graphql.ResolveParams) (interface{}, error) {
					claims, err := r.gate(p, "user")
					if err != nil {
						return nil, err
					}

					username, _ := p.Args["username"].(string)
					user, err := r.users.ByUsername(p.Context, username)
					if err != nil {
						logger.WithCtx(p.Context).Error("user lookup failed", "error", err)
						return nil, faults.Internal()
					}
					// Self-scoped: a non-admin asking about someone else gets
					// the same null a missing username would produce, so the
					// lookup cannot be used to probe for existing accounts.
					if user == nil || (!policy.IsAdmin(claims) && user.ID != claims.Subject) {
						return nil, nil
					}
					return user, nil
				}),
			},

			"users": &graphql.Field{
				Type: graphql.NewList(t.user),
				Args: graphql.FieldConfigArgument{"webtoken": webtokenArg},
				Resolve: timed("users", func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.gate(p, "users"); err != nil {
						return nil, err
					}

					users, err := r.users.All(p.Context)
					if err != nil {
						logger.WithCtx(p.Context).Error("users listing failed", "error", err)
						return nil, faults.Internal()
					}
					return users, nil
				}),
			},

			"item": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: timed("item", func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["_id"].(string)
					item, err := r.items.ByID(p.Context, id)
					if err != nil {
						logger.WithCtx(p.Context).Error("item lookup failed", "error", err)
						return nil, faults.Internal()
					}
					return item, nil
				}),
			},

			"items": &graphql.Field{
				Type: graphql.NewList(t.item),
				Args: graphql.FieldConfigArgument{
					"menuCategory": &graphql.ArgumentConfig{Type: menuCategoryEnum},
				},
				Resolve: timed("items", func(p graphql.ResolveParams) (interface{}, error) {
					if category, ok := p.Args["menuCategory"].(string); ok {
						items, err := r.items.ByCategory(p.Context, category)
						if err != nil {
							logger.WithCtx(p.Context).Error("items listing failed", "error", err)
							return nil, faults.Internal()
						}
						return items, nil
					}

					items, err := r.items.All(p.Context)
					if err != nil {
						logger.WithCtx(p.Context).Error("items listing failed", "error", err)
						return nil, faults.Internal()
					}
					return items, nil
				}),
			},

			"allItems": &graphql.Field{
				Type: graphql.NewList(t.item),
				Resolve: timed("allItems", func(p graphql.ResolveParams) (interface{}, error) {
					items, err := r.items.All(p.Context)
					if err != nil {
						logger.WithCtx(p.Context).Error("items listing failed", "error", err)
						return nil, faults.Internal()
					}
					return items, nil
				}),
			},

			"order": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"webtoken": webtokenArg,
				},
				Resolve: timed("order", func(p graphql.ResolveParams) (interface{}, error) {
					claims, err := r.gate(p, "order")
					if err != nil {
						return nil, err
					}

					id, _ := p.Args["_id"].(string)
					order, err := r.orders.ByID(p.Context, id)
					if err != nil {
						logger.WithCtx(p.Context).Error("order lookup failed", "error", err)
						return nil, faults.Internal()
					}
					// Self-scoped, same null as a missing id (see "user").
					if order == nil || (!policy.IsAdmin(claims) && order.UserID != claims.Subject) {
						return nil, nil
					}
					return order, nil
				}),
			},

			"allOrders": &graphql.Field{
				Type: graphql.NewList(t.order),
				Args: graphql.FieldConfigArgument{"webtoken": webtokenArg},
				Resolve: timed("allOrders", func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.gate(p, "allOrders"); err != nil {
						return nil, err
					}

					orders, err := r.orders.All(p.Context)
					if err != nil {
						logger.WithCtx(p.Context).Error("orders listing failed", "error", err)
						return nil, faults.Internal()
					}
					return orders, nil
				}),
			},

			"menu": &graphql.Field{
				Type: t.menu,
				Resolve: timed("menu", func(p graphql.ResolveParams) (interface{}, error) {
					return r.menu.Build(p.Context)
				}),
			},
		},
	})
}
