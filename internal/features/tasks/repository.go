package tasks

import (
	"context"
	"fmt"
	"strings"
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
	collection := db.Collection("tasks")

	// Create indexes
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "project", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, task *Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Subtasks == nil {
		task.Subtasks = []Subtask{}
	}
	if task.Dependencies == nil {
		task.Dependencies = []primitive.ObjectID{}
	}
	if task.Reminders == nil {
		task.Reminders = []Reminder{}
	}
	if task.Attachments == nil {
		task.Attachments = []Attachment{}
	}
	if task.Comments == nil {
		task.Comments = []Comment{}
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return err
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %w", apperrors.ErrValidation)
	}

	var task Task
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// Replace persists the whole task document after an in-memory mutation
func (r *Repository) Replace(ctx context.Context, task *Task) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task %s: %w", task.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// List returns the user's non-archived tasks matching the query. A
// user sees tasks they created or are assigned to.
func (r *Repository) List(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]Task, int64, error) {
	filter := bson.M{
		"isArchived": false,
		"$or": []bson.M{
			{"createdBy": userID},
			{"assignedTo": userID},
		},
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}
	if q.Project != "" {
		projectID, err := primitive.ObjectIDFromHex(q.Project)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project ID: %w", apperrors.ErrValidation)
		}
		filter["project"] = projectID
	}
	if q.Tags != "" {
		filter["tags"] = bson.M{"$in": splitTags(q.Tags)}
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: q.Search, Options: "i"}
		filter["$and"] = []bson.M{
			{"$or": []bson.M{
				{"title": pattern},
				{"description": pattern},
			}},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortDir := -1
	if q.Order == "asc" {
		sortDir = 1
	}
	sortField := q.SortBy
	if sortField == "" {
		sortField = "createdAt"
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}
	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, total, nil
}

// ListByProject returns every task in a project, archived included.
// Stats and analytics need the full picture.
func (r *Repository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// CountsByProject returns total, completed and overdue task counts for
// project stats. Archived tasks count too.
func (r *Repository) CountsByProject(ctx context.Context, projectID primitive.ObjectID) (total, completed, overdue int64, err error) {
	filter := bson.M{"project": projectID}

	total, err = r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, 0, 0, err
	}

	completed, err = r.collection.CountDocuments(ctx, bson.M{
		"project": projectID,
		"status":  StatusCompleted,
	})
	if err != nil {
		return 0, 0, 0, err
	}

	overdue, err = r.collection.CountDocuments(ctx, bson.M{
		"project": projectID,
		"status":  bson.M{"$ne": StatusCompleted},
		"dueDate": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		return 0, 0, 0, err
	}

	return total, completed, overdue, nil
}

// Overdue returns the user's tasks past their due date and not completed
func (r *Repository) Overdue(ctx context.Context, userID primitive.ObjectID) ([]Task, error) {
	return r.findSorted(ctx, bson.M{
		"isArchived": false,
		"$or": []bson.M{
			{"createdBy": userID},
			{"assignedTo": userID},
		},
		"status":  bson.M{"$nin": []string{StatusCompleted, StatusCancelled}},
		"dueDate": bson.M{"$lt": time.Now()},
	}, bson.D{{Key: "dueDate", Value: 1}})
}

// DueToday returns the user's tasks due within the current calendar day
func (r *Repository) DueToday(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]Task, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	return r.findSorted(ctx, bson.M{
		"isArchived": false,
		"$or": []bson.M{
			{"createdBy": userID},
			{"assignedTo": userID},
		},
		"status":  bson.M{"$nin": []string{StatusCompleted, StatusCancelled}},
		"dueDate": bson.M{"$gte": start, "$lt": end},
	}, bson.D{{Key: "dueDate", Value: 1}})
}

// ListByUser returns every task the user created, archived included,
// for analytics aggregation.
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Task, error) {
	return r.findSorted(ctx, bson.M{
		"createdBy": userID,
	}, bson.D{{Key: "createdAt", Value: -1}})
}

// CountAll returns the total number of tasks across all users
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountCompletedSince counts tasks completed after the cutoff,
// regardless of when they were created.
func (r *Repository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"status":      StatusCompleted,
		"completedAt": bson.M{"$gte": since},
	})
}

// ListSince returns tasks created after the cutoff, across all users
func (r *Repository) ListSince(ctx context.Context, since time.Time) ([]Task, error) {
	return r.findSorted(ctx, bson.M{
		"createdAt": bson.M{"$gte": since},
	}, bson.D{{Key: "createdAt", Value: 1}})
}

func (r *Repository) findSorted(ctx context.Context, filter bson.M, sort bson.D) ([]Task, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func splitTags(csv string) []string {
	return normalizeTags(strings.Split(csv, ","))
}
