package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/questionboard/questionboard/internal/question"
)

// MongoRepo implements Repository on a MongoDB collection. Integer ids are
// drawn from a per-collection sequence document in the "counters" collection
// so the API keeps the same id format as the relational store.
type MongoRepo struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("questions"), counters: db.Collection("counters")}
}

// Migrate ensures the listing indexes exist.
func (m *MongoRepo) Migrate(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := m.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create question indexes: %w", err)
	}
	return nil
}

func (m *MongoRepo) nextID(ctx context.Context) (int64, error) {
	var seq struct {
		Value int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": m.col.Name()},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&seq)
	if err != nil {
		return 0, fmt.Errorf("next question id: %w", err)
	}
	return seq.Value, nil
}

func (m *MongoRepo) Create(ctx context.Context, q *question.Question) error {
	id, err := m.nextID(ctx)
	if err != nil {
		return err
	}
	q.ID = id
	if _, err := m.col.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id int64) (*question.Question, error) {
	var q question.Question
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, question.ErrNotFound
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &q, nil
}

func (m *MongoRepo) List(ctx context.Context, f question.Filter) ([]*question.Question, error) {
	filter := bson.M{}
	if f.Status != nil {
		filter["status"] = string(*f.Status)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)
	out := []*question.Question{}
	for cur.Next(ctx) {
		var q question.Question
		if err := cur.Decode(&q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, &q)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) UpdateStatus(ctx context.Context, id int64, status question.Status, updatedAt time.Time) (*question.Question, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var q question.Question
	err := m.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": updatedAt}},
		opts,
	).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, question.ErrNotFound
		}
		return nil, fmt.Errorf("update question %d: %w", id, err)
	}
	return &q, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id int64) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return question.ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
