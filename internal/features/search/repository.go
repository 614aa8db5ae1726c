package search

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository runs scoped searches over the task and project
// collections. Results are always restricted to what the caller can
// already see.
type Repository struct {
	tasks    *mongo.Collection
	projects *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		tasks:    db.Collection("tasks"),
		projects: db.Collection("projects"),
	}
}

// SearchTasks matches the user's tasks by title, description or tag
func (r *Repository) SearchTasks(ctx context.Context, userID primitive.ObjectID, query string, limit int) ([]taskDoc, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$and": []bson.M{
			{"$or": []bson.M{
				{"createdBy": userID},
				{"assignedTo": userID},
			}},
			{"$or": []bson.M{
				{"title": pattern},
				{"description": pattern},
				{"tags": pattern},
			}},
		},
		"isArchived": false,
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []taskDoc{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// SearchProjects matches the user's projects by name or description
func (r *Repository) SearchProjects(ctx context.Context, userID primitive.ObjectID, query string, limit int) ([]projectDoc, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$and": []bson.M{
			{"$or": []bson.M{
				{"owner": userID},
				{"collaborators.user": userID},
			}},
			{"$or": []bson.M{
				{"name": pattern},
				{"description": pattern},
			}},
		},
		"isArchived": false,
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.projects.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []projectDoc{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
