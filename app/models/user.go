package models

// Role values form a closed set; anything else is rejected at the input
// boundary.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// AllRoles lists every valid role.
var AllRoles = []string{RoleUser, RoleAdmin, RoleSuperAdmin}

// ValidRole reports whether r is a member of the role enum.
func ValidRole(r string) bool {
	for _, v := range AllRoles {
		if v == r {
			return true
		}
	}
	return false
}

// User is an identity record. Related items and orders are held by id and
// expanded on demand by the resolver layer, never materialised in memory as
// a cyclic object graph.
type User struct {
	ID              string   `bson:"_id,omitempty" json:"_id"`
	Roles           []string `bson:"roles" json:"roles"`
	FirstName       string   `bson:"firstName" json:"firstName"`
	LastName        string   `bson:"lastName" json:"lastName"`
	Username        string   `bson:"username" json:"username"`
	PhoneNumber     string   `bson:"phoneNumber" json:"phoneNumber"`
	Password        string   `bson:"password" json:"password"` // bcrypt digest; absent from the output type graph
	FavoriteItemIDs []string `bson:"favoriteItemIds" json:"favoriteItemIds"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
