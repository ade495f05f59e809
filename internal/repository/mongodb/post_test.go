package mongodb

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostFilter_Build(t *testing.T) {
	featured := true
	uid := primitive.NewObjectID()

	cases := []struct {
		name   string
		filter PostFilter
		want   bson.M
	}{
		{
			"empty filter matches everything",
			PostFilter{},
			bson.M{},
		},
		{
			"featured partition",
			PostFilter{Featured: &featured},
			bson.M{"featured": true},
		},
		{
			"tag filter",
			PostFilter{Featured: &featured, Tag: "rust"},
			bson.M{"featured": true, "tags": "rust"},
		},
		{
			"search is a literal case-insensitive pattern",
			PostFilter{Search: "c++"},
			bson.M{"title": primitive.Regex{Pattern: `c\+\+`, Options: "i"}},
		},
		{
			"owner filter",
			PostFilter{UserID: &uid},
			bson.M{"user": uid},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.build()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("build() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID(primitive.NewObjectID().Hex()) {
		t.Fatalf("expected a generated id to be valid")
	}
	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "68b0f00d"} {
		if IsValidID(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}
