package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/tavola/pkg/bind"
	"github.com/shashiranjanraj/tavola/pkg/faults"
)

// Input objects are a parallel universe to the output types: flat,
// pre-validated argument bundles that never reference output types.

var itemInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "itemInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"itemDescription": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"menuCategory":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(menuCategoryEnum)},
		"tags":            &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		"itemPrice":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"itemImageURL":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"sideIds":         &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
		"upsellIds":       &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
	},
})

var orderInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "orderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"itemIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"comment": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// itemInput mirrors the itemInput object. Enum membership is checked again
// here so a value smuggled past the executor (e.g. via a raw variable) still
// fails at the boundary, not deep in resolution.
type itemInput struct {
	Description string   `json:"itemDescription" validate:"required,max=500"`
	Category    string   `json:"menuCategory"    validate:"required,in=APPETIZER,ENTRE,SIDE,DESERT,DRINK,UPSELL"`
	Tags        []string `json:"tags"`
	Price       string   `json:"itemPrice"       validate:"required,decimal"`
	ImageURL    string   `json:"itemImageURL"    validate:"nullable,url"`
	SideIDs     []string `json:"sideIds"`
	UpsellIDs   []string `json:"upsellIds"`
}

// orderInput mirrors the orderInput object.
type orderInput struct {
	ItemIDs []string `json:"itemIds" validate:"required"`
	Comment string   `json:"comment" validate:"nullable,max=500"`
}

// signUpInput bundles the flat signUp arguments.
type signUpInput struct {
	Username    string   `json:"username"    validate:"required,alpha_dash,min=3,max=50"`
	Password    string   `json:"password"    validate:"required,min=8"`
	FirstName   string   `json:"firstName"   validate:"required,max=100"`
	LastName    string   `json:"lastName"    validate:"required,max=100"`
	PhoneNumber string   `json:"phoneNumber" validate:"required,min=7,max=20"`
	Roles       []string `json:"roles"`
}

// decodeInput binds an argument map to a typed input struct and reports
// failures as validation faults naming the offending field.
func decodeInput(args map[string]interface{}, dest interface{}) error {
	errs, err := bind.Map(args, dest)
	if err != nil {
		return faults.Invalid("input", err.Error())
	}
	if len(errs) > 0 {
		return faults.Validation(errs)
	}
	return nil
}

// inputObject extracts a named input-object argument.
func inputObject(p graphql.ResolveParams, name string) (map[string]interface{}, error) {
	obj, ok := p.Args[name].(map[string]interface{})
	if !ok {
		return nil, faults.Invalid(name, "The "+name+" field is required.")
	}
	return obj, nil
}
