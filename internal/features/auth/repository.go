package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/taskhive/internal/features/gamification"
)

// Repository handles database interactions for users
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{Keys: bson.D{{Key: "lastLogin", Value: -1}}},
	})

	return &Repository{collection: collection}
}

// Create inserts a new user
func (r *Repository) Create(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	user.LastLogin = now
	if user.Preferences.Theme == "" {
		user.Preferences = DefaultPreferences()
	}
	if user.Gamification.Level == 0 {
		user.Gamification = gamification.New()
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user duplicate key error: %w", err)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

// FindByEmail finds a user by email; nil when absent
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByGoogleID finds a user by Google account id; nil when absent
func (r *Repository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"googleId": googleID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by hex id; nil when absent
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to a user document
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// TouchLastLogin stamps the last successful login
func (r *Repository) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, bson.M{"lastLogin": time.Now()})
}

// GetGamification loads just the gamification document of a user
func (r *Repository) GetGamification(ctx context.Context, userID primitive.ObjectID) (*gamification.Gamification, error) {
	var doc struct {
		Gamification gamification.Gamification `bson:"gamification"`
	}

	opts := options.FindOne().SetProjection(bson.M{"gamification": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	if doc.Gamification.Level == 0 {
		doc.Gamification = gamification.New()
	}
	return &doc.Gamification, nil
}

// SaveGamification persists the gamification document of a user
func (r *Repository) SaveGamification(ctx context.Context, userID primitive.ObjectID, g *gamification.Gamification) error {
	return r.Update(ctx, userID, bson.M{"gamification": g})
}

// GetStreak reads the user's current activity streak
func (r *Repository) GetStreak(ctx context.Context, userID primitive.ObjectID) (int, error) {
	g, err := r.GetGamification(ctx, userID)
	if err != nil {
		return 0, err
	}
	return g.Streak, nil
}

// IsAdmin reports whether the user carries the admin flag
func (r *Repository) IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	var doc struct {
		IsAdmin bool `bson:"isAdmin"`
	}

	opts := options.FindOne().SetProjection(bson.M{"isAdmin": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return doc.IsAdmin, nil
}

// Search finds active users whose name or email matches the query,
// newest first.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"isActive": true,
		"$or": []bson.M{
			{"name": pattern},
			{"email": pattern},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0, "googleId": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// NamesByID resolves display names for a set of user ids. Unknown ids
// are simply absent from the result.
func (r *Repository) NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		names[d.ID] = d.Name
	}
	return names, nil
}

// CountUsers counts every registered user
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountCreatedSince counts users registered after the cutoff
func (r *Repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

// CountActiveSince counts users who logged in after the cutoff
func (r *Repository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"lastLogin": bson.M{"$gte": since}})
}
