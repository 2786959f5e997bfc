// internal/app/store/activities/mongostore.go
package activitystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/activityhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// activityDoc is the stored shape of an activity. Position keeps the
// catalogue order stable across reads.
type activityDoc struct {
	ID              primitive.ObjectID `bson:"_id"`
	Position        int                `bson:"position"`
	models.Activity `bson:",inline"`
}

// Mongo is a Store backed by the "activities" collection.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo creates a Mongo store on db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("activities")}
}

// EnsureIndexes creates the unique name index and the ordering index.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_activity_name").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "position", Value: 1}},
			Options: options.Index().SetName("idx_activity_position"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Seed inserts acts when the collection is empty. It returns how many
// activities were inserted.
func (s *Mongo) Seed(ctx context.Context, acts []models.Activity) (int, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for i, a := range acts {
		a = a.Clone()
		if a.Participants == nil {
			a.Participants = []string{}
		}
		doc := activityDoc{ID: primitive.NewObjectID(), Position: i, Activity: a}
		if _, err := s.c.InsertOne(ctx, doc); err != nil {
			// Another instance seeded the same activity first.
			if wafflemongo.IsDup(err) {
				continue
			}
			return inserted, fmt.Errorf("seed %q: %w", a.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

func (s *Mongo) List(ctx context.Context) (models.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return models.Collection{}, err
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return models.Collection{}, err
	}

	var c models.Collection
	for _, d := range docs {
		c.Put(d.Activity)
	}
	return c, nil
}

// Signup appends email in one conditional update so capacity and
// uniqueness hold under concurrent writers.
func (s *Mongo) Signup(ctx context.Context, activity, email string) (string, error) {
	email = NormalizeEmail(email)

	filter := bson.M{
		"name":         activity,
		"participants": bson.M{"$ne": email},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": "$participants"},
			"$max_participants",
		}},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"participants": email}})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", s.classifySignup(ctx, activity, email)
	}
	return signedUpMessage(activity, email), nil
}

func (s *Mongo) classifySignup(ctx context.Context, activity, email string) error {
	a, err := s.get(ctx, activity)
	if err != nil {
		return err
	}
	if indexOf(a.Participants, email) >= 0 {
		return ErrAlreadySignedUp
	}
	return ErrActivityFull
}

func (s *Mongo) Remove(ctx context.Context, activity, email string) (string, error) {
	email = NormalizeEmail(email)

	filter := bson.M{"name": activity, "participants": email}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"participants": email}})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		if _, err := s.get(ctx, activity); err != nil {
			return "", err
		}
		return "", ErrParticipantNotFound
	}
	return removedMessage(activity, email), nil
}

func (s *Mongo) Ping(ctx context.Context) error {
	return s.c.Database().Client().Ping(ctx, readpref.Primary())
}

func (s *Mongo) get(ctx context.Context, name string) (models.Activity, error) {
	var d activityDoc
	err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Activity{}, ErrActivityNotFound
	}
	if err != nil {
		return models.Activity{}, err
	}
	return d.Activity, nil
}
