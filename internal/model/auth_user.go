package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// AuthUser is the identity resolved from an access token by the auth
// middleware. Mutations receive it explicitly; a nil AuthUser means the
// request carried no valid identity.
type AuthUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}
