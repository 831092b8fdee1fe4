package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/app/services"
	"github.com/shashiranjanraj/tavola/pkg/collection"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
	"github.com/shashiranjanraj/tavola/pkg/store"
)

// newRootMutation declares the root write operations. Every mutation runs
// validate → authorize → apply → fresh read; nothing is written before both
// validation and authorization pass, so partial application is never
// observable.
func (r *Resolver) newRootMutation(t *schemaTypes) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"username":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"firstName":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"lastName":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phoneNumber": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"roles":       &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(rolesEnum))},
				},
				Resolve: timed("signUp", func(p graphql.ResolveParams) (interface{}, error) {
					var in signUpInput
					if err := decodeInput(p.Args, &in); err != nil {
						return nil, err
					}

					return r.auth.SignUp(p.Context, services.SignUpParams{
						Username:    in.Username,
						Password:    in.Password,
						FirstName:   in.FirstName,
						LastName:    in.LastName,
						PhoneNumber: in.PhoneNumber,
						Roles:       in.Roles,
					})
				}),
			},

			"logIn": &graphql.Field{
				Type: t.authPayload,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: timed("logIn", func(p graphql.ResolveParams) (interface{}, error) {
					username, _ := p.Args["username"].(string)
					password, _ := p.Args["password"].(string)
					return r.auth.LogIn(p.Context, username, password)
				}),
			},

			"createItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"item":     &graphql.ArgumentConfig{Type: itemInputType},
					"webtoken": webtokenArg,
				},
				Resolve: timed("createItem", func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.gate(p, "createItem"); err != nil {
						return nil, err
					}

					in, err := r.validatedItemInput(p)
					if err != nil {
						return nil, err
					}

					item := &models.Item{
						Description: in.Description,
						Category:    in.Category,
						Tags:        collection.Unique(in.Tags),
						Price:       in.Price,
						ImageURL:    in.ImageURL,
						SideIDs:     in.SideIDs,
						UpsellIDs:   in.UpsellIDs,
					}
					if err := r.items.Create(p.Context, item); err != nil {
						logger.WithCtx(p.Context).Error("item create failed", "error", err)
						return nil, faults.Internal()
					}
					r.menu.Invalidate()

					created, err := r.items.ByID(p.Context, item.ID)
					if err != nil {
						logger.WithCtx(p.Context).Error("item read-back failed", "error", err)
						return nil, faults.Internal()
					}
					return created, nil
				}),
			},

			"editItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"item":     &graphql.ArgumentConfig{Type: itemInputType},
					"webtoken": webtokenArg,
				},
				Resolve: timed("editItem", func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.gate(p, "editItem"); err != nil {
						return nil, err
					}

					in, err := r.validatedItemInput(p)
					if err != nil {
						return nil, err
					}

					id, _ := p.Args["_id"].(string)
					item, err := r.items.Patch(p.Context, id, store.Filter{
						"itemDescription": in.Description,
						"menuCategory":    in.Category,
						"tags":            collection.Unique(in.Tags),
						"itemPrice":       in.Price,
						"itemImageURL":    in.ImageURL,
						"sideIds":         in.SideIDs,
						"upsellIds":       in.UpsellIDs,
					})
					if err != nil {
						logger.WithCtx(p.Context).Error("item patch failed", "error", err)
						return nil, faults.Internal()
					}
					if item == nil {
						return nil, nil
					}
					r.menu.Invalidate()
					return item, nil
				}),
			},

			"removeItem": &graphql.Field{
				Type: t.item,
				Args: graphql.FieldConfigArgument{
					"_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"webtoken": webtokenArg,
				},
				Resolve: timed("removeItem", func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.gate(p, "removeItem"); err != nil {
						return nil, err
					}

					id, _ := p.Args["_id"].(string)
					item, err := r.items.Remove(p.Context, id)
					if err != nil {
						logger.WithCtx(p.Context).Error("item remove failed", "error", err)
						return nil, faults.Internal()
					}
					if item == nil {
						return nil, nil
					}
					r.menu.Invalidate()
					return item, nil
				}),
			},

			"createOrder": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"order":    &graphql.ArgumentConfig{Type: orderInputType},
					"webtoken": webtokenArg,
				},
				Resolve: timed("createOrder", func(p graphql.ResolveParams) (interface{}, error) {
					claims, err := r.gate(p, "createOrder")
					if err != nil {
						return nil, err
					}

					args, err := inputObject(p, "order")
					if err != nil {
						return nil, err
					}

					var in orderInput
					if err := decodeInput(args, &in); err != nil {
						return nil, err
					}

					// The owner is always the token's subject; nothing in the
					// client input can change it.
					return r.orderSvc.Create(p.Context, claims.Subject, in.ItemIDs, in.Comment)
				}),
			},
		},
	})
}

// validatedItemInput decodes and validates the item argument, including the
// referential check that every side/upsell id names an existing item.
func (r *Resolver) validatedItemInput(p graphql.ResolveParams) (*itemInput, error) {
	args, err := inputObject(p, "item")
	if err != nil {
		return nil, err
	}

	var in itemInput
	if err := decodeInput(args, &in); err != nil {
		return nil, err
	}

	if err := r.checkItemRefs(p, "sideIds", in.SideIDs); err != nil {
		return nil, err
	}
	if err := r.checkItemRefs(p, "upsellIds", in.UpsellIDs); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *Resolver) checkItemRefs(p graphql.ResolveParams, field string, ids []string) error {
	missing, err := r.items.Missing(p.Context, ids)
	if err != nil {
		logger.WithCtx(p.Context).Error("item reference check failed", "error", err)
		return faults.Internal()
	}
	if len(missing) > 0 {
		return faults.Invalid(field, fmt.Sprintf("Unknown item ids: %s", strings.Join(missing, ", ")))
	}
	return nil
}
