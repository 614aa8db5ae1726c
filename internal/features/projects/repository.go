package projects

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("projects")

	// Create indexes
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "collaborators.user", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, project *Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Collaborators == nil {
		project.Collaborators = []Collaborator{}
	}

	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return err
	}

	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	var project Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// ListForUser returns non-archived projects the user owns or
// collaborates on, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]Project, error) {
	filter := bson.M{
		"isArchived": false,
		"$or": []bson.M{
			{"owner": userID},
			{"collaborators.user": userID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []Project{}
	}
	return projects, nil
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *Repository) AddCollaborator(ctx context.Context, id primitive.ObjectID, collab Collaborator) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "collaborators.user": bson.M{"$ne": collab.User}},
		bson.M{
			"$push": bson.M{"collaborators": collab},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("collaborator already on project: %w", apperrors.ErrDuplicate)
	}
	return nil
}

func (r *Repository) RemoveCollaborator(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"collaborators": bson.M{"user": userID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// SaveStats writes the counter snapshot without touching updatedAt;
// stats refreshes should not look like edits.
func (r *Repository) SaveStats(ctx context.Context, id primitive.ObjectID, stats Stats) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"stats": stats}})
	return err
}

// CountAll returns the total number of projects
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountCreatedSince counts projects created after the cutoff
func (r *Repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

// CountActiveSince counts projects touched after the cutoff
func (r *Repository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"updatedAt": bson.M{"$gte": since}})
}

func (r *Repository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsMember reports whether the user is the owner or a collaborator
func (r *Repository) IsMember(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"_id": id,
		"$or": []bson.M{
			{"owner": userID},
			{"collaborators.user": userID},
		},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
