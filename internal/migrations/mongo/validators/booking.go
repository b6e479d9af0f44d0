package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"treatment",
			"appointmentDate",
			"email",
			"slot",
			"paid",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"treatment": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"appointmentDate": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 40,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
			},

			"slot": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 40,
			},

			"patientName": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"paid": bson.M{
				"bsonType": "bool",
			},

			"transactionId": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
