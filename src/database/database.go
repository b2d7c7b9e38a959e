package database

import (
	"context"
	"log"

	"Backend-FormDesk/src/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the services.
const (
	FormsCollection        = "forms"
	SubmissionsCollection  = "submissions"
	UniqueClaimsCollection = "submission_uniques"
	AdminsCollection       = "admins"
	UploadsBucket          = "uploads"
)

// Mongo bundles the connected client and the application database. It is
// constructed once at startup and injected into every service; close it on
// shutdown with Disconnect.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("✅ MongoDB connected successfully")

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// Disconnect closes the underlying client.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the intake pipeline relies on. The
// compound unique index on the claims collection is the real barrier
// against duplicate unique-field values under concurrent submissions.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	claims := m.DB.Collection(UniqueClaimsCollection)
	_, err := claims.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "formId", Value: 1},
			{Key: "field", Value: 1},
			{Key: "value", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_form_field_value"),
	})
	if err != nil {
		return err
	}

	subs := m.DB.Collection(SubmissionsCollection)
	_, err = subs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("form_created"),
		},
		{
			Keys: bson.D{{Key: "paymentDetails.orderId", Value: 1}},
			Options: options.Index().
				SetName("payment_order").
				SetPartialFilterExpression(bson.M{"paymentDetails.orderId": bson.M{"$exists": true}}),
		},
	})
	if err != nil {
		return err
	}

	admins := m.DB.Collection(AdminsCollection)
	_, err = admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_admin_email"),
	})
	return err
}
