package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   bson.M
	}{
		{"empty", Filter{}, bson.M{}},
		{"category all is no filter", Filter{Category: "all"}, bson.M{}},
		{
			"category",
			Filter{Category: "food_drink"},
			bson.M{"is_food_drink": true},
		},
		{
			"date range",
			Filter{DateStart: &start, DateEnd: &end},
			bson.M{"date": bson.M{"$gte": start, "$lte": end}},
		},
		{
			"start only",
			Filter{DateStart: &start},
			bson.M{"date": bson.M{"$gte": start}},
		},
		{
			"combined",
			Filter{DateStart: &start, Category: "grocery"},
			bson.M{"date": bson.M{"$gte": start}, "is_grocery": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}
