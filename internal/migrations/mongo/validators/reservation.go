package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"first_name",
			"last_name",
			"email",
			"from_date",
			"to_date",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": bson.A{"long", "int"},
				"minimum":  1,
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[A-Za-z0-9+_.-]+@(.+)$`,
			},

			"from_date": bson.M{
				"bsonType": "date",
			},

			"to_date": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

// ReservationLockValidator guards the single writer lock document.
var ReservationLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "version"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"version": bson.M{
				"bsonType": bson.A{"long", "int"},
				"minimum":  0,
			},
			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
