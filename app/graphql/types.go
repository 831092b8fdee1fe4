package graphql

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/tavola/app/models"
	"github.com/shashiranjanraj/tavola/pkg/faults"
	"github.com/shashiranjanraj/tavola/pkg/logger"
)

// maxRelationDepth caps expansion of the recursive Item edges. Storage may
// hold cycles (an item reachable from itself through sides/upsells); beyond
// this depth the resolver returns an empty list instead of recursing.
const maxRelationDepth = 5

var rolesEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Roles",
	Values: graphql.EnumValueConfigMap{
		"USER":        &graphql.EnumValueConfig{Value: models.RoleUser},
		"ADMIN":       &graphql.EnumValueConfig{Value: models.RoleAdmin},
		"SUPER_ADMIN": &graphql.EnumValueConfig{Value: models.RoleSuperAdmin},
	},
})

var menuCategoryEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MenuCategory",
	Values: graphql.EnumValueConfigMap{
		"APPETIZER": &graphql.EnumValueConfig{Value: models.CategoryAppetizer},
		"ENTRE":     &graphql.EnumValueConfig{Value: models.CategoryEntre},
		"SIDE":      &graphql.EnumValueConfig{Value: models.CategorySide},
		"DESERT":    &graphql.EnumValueConfig{Value: models.CategoryDesert},
		"DRINK":     &graphql.EnumValueConfig{Value: models.CategoryDrink},
		"UPSELL":    &graphql.EnumValueConfig{Value: models.CategoryUpsell},
	},
})

// relationDepth counts how many sides/upsells edges the response path has
// already traversed, including the field being resolved.
func relationDepth(info graphql.ResolveInfo) int {
	depth := 0
	for _, seg := range info.Path.AsArray() {
		if s, ok := seg.(string); ok && (s == "sides" || s == "upsells") {
			depth++
		}
	}
	return depth
}

// newTypes builds the output type graph. The self-referential Item edges and
// the mutual User↔Order edges are added after construction, since they need
// the objects to exist first.
func (r *Resolver) newTypes() *schemaTypes {
	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Item",
		Fields: graphql.Fields{
			"_id":             &graphql.Field{Type: graphql.String},
			"itemDescription": &graphql.Field{Type: graphql.String},
			"menuCategory":    &graphql.Field{Type: menuCategoryEnum},
			"tags":            &graphql.Field{Type: graphql.NewList(graphql.String)},
			"itemPrice":       &graphql.Field{Type: graphql.String},
			"itemImageURL":    &graphql.Field{Type: graphql.String},
		},
	})

	itemType.AddFieldConfig("sides", &graphql.Field{
		Type:    graphql.NewList(itemType),
		Resolve: r.itemRelation(func(i *models.Item) []string { return i.SideIDs }),
	})
	itemType.AddFieldConfig("upsells", &graphql.Field{
		Type:    graphql.NewList(itemType),
		Resolve: r.itemRelation(func(i *models.Item) []string { return i.UpsellIDs }),
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":         &graphql.Field{Type: graphql.String},
			"roles":       &graphql.Field{Type: graphql.NewList(rolesEnum)},
			"firstName":   &graphql.Field{Type: graphql.String},
			"lastName":    &graphql.Field{Type: graphql.String},
			"username":    &graphql.Field{Type: graphql.String},
			"phoneNumber": &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"_id":           &graphql.Field{Type: graphql.String},
			"total":         &graphql.Field{Type: graphql.String},
			"statusMessage": &graphql.Field{Type: graphql.String},
			"comment":       &graphql.Field{Type: graphql.String},
			"fulfilled":     &graphql.Field{Type: graphql.Boolean},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o, ok := orderSource(p.Source); ok {
						return o.CreatedAt.Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if o, ok := orderSource(p.Source); ok {
						return o.UpdatedAt.Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
		},
	})

	userType.AddFieldConfig("favoriteItems", &graphql.Field{
		Type: graphql.NewList(itemType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := userSource(p.Source)
			if !ok {
				return nil, nil
			}
			return r.expandItems(p.Context, user.FavoriteItemIDs)
		},
	})
	userType.AddFieldConfig("orders", &graphql.Field{
		Type: graphql.NewList(orderType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := userSource(p.Source)
			if !ok {
				return nil, nil
			}
			orders, err := r.orders.ByUser(p.Context, user.ID)
			if err != nil {
				logger.WithCtx(p.Context).Error("order expansion failed", "error", err)
				return nil, faults.Internal()
			}
			return orders, nil
		},
	})
	userType.AddFieldConfig("pendingOrders", &graphql.Field{
		Type: graphql.NewList(orderType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			user, ok := userSource(p.Source)
			if !ok {
				return nil, nil
			}
			orders, err := r.orders.PendingByUser(p.Context, user.ID)
			if err != nil {
				logger.WithCtx(p.Context).Error("pending order expansion failed", "error", err)
				return nil, faults.Internal()
			}
			return orders, nil
		},
	})

	orderType.AddFieldConfig("user", &graphql.Field{
		Type: userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			order, ok := orderSource(p.Source)
			if !ok {
				return nil, nil
			}
			user, err := r.users.ByID(p.Context, order.UserID)
			if err != nil {
				logger.WithCtx(p.Context).Error("order owner lookup failed", "error", err)
				return nil, faults.Internal()
			}
			if user == nil {
				logger.WithCtx(p.Context).Warn("order references missing user",
					"order_id", order.ID, "user_id", order.UserID)
			}
			return user, nil
		},
	})
	orderType.AddFieldConfig("items", &graphql.Field{
		Type: graphql.NewList(itemType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			order, ok := orderSource(p.Source)
			if !ok {
				return nil, nil
			}
			return r.expandItems(p.Context, order.ItemIDs)
		},
	})

	menuType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Menu",
		Fields: graphql.Fields{
			"entrees":    &graphql.Field{Type: graphql.NewList(itemType)},
			"sides":      &graphql.Field{Type: graphql.NewList(itemType)},
			"appetizers": &graphql.Field{Type: graphql.NewList(itemType)},
			"deserts":    &graphql.Field{Type: graphql.NewList(itemType)},
			"drinks":     &graphql.Field{Type: graphql.NewList(itemType)},
			"upsells":    &graphql.Field{Type: graphql.NewList(itemType)},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String},
			"user":  &graphql.Field{Type: userType},
		},
	})

	return &schemaTypes{
		item:        itemType,
		user:        userType,
		order:       orderType,
		menu:        menuType,
		authPayload: authPayloadType,
	}
}

// itemRelation builds the resolver for a recursive Item edge with the
// depth guard applied.
func (r *Resolver) itemRelation(ids func(*models.Item) []string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		item, ok := itemSource(p.Source)
		if !ok {
			return nil, nil
		}
		if relationDepth(p.Info) > maxRelationDepth {
			return []models.Item{}, nil
		}
		return r.expandItems(p.Context, ids(item))
	}
}

// expandItems turns id references into full items, preserving order and
// repetition.
func (r *Resolver) expandItems(ctx context.Context, ids []string) (interface{}, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}

	items, err := r.items.ByIDs(ctx, ids)
	if err != nil {
		logger.WithCtx(ctx).Error("item expansion failed", "error", err)
		return nil, faults.Internal()
	}
	return items, nil
}

func itemSource(src interface{}) (*models.Item, bool) {
	switch v := src.(type) {
	case *models.Item:
		return v, v != nil
	case models.Item:
		return &v, true
	}
	return nil, false
}

func userSource(src interface{}) (*models.User, bool) {
	switch v := src.(type) {
	case *models.User:
		return v, v != nil
	case models.User:
		return &v, true
	}
	return nil, false
}

func orderSource(src interface{}) (*models.Order, bool) {
	switch v := src.(type) {
	case *models.Order:
		return v, v != nil
	case models.Order:
		return &v, true
	}
	return nil, false
}
