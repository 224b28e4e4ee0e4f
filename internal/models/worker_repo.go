package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkerRepo is the persistence gateway for worker records. Lookups return
// (nil, nil) when the record does not exist.
type WorkerRepo interface {
	InsertWorker(ctx context.Context, worker *Worker) (*Worker, error)
	FindWorkerByID(ctx context.Context, id string) (*Worker, error)
	FindWorkers(ctx context.Context, q WorkerQuery) ([]*Worker, error)
	UpdateWorker(ctx context.Context, id string, patch *WorkerPatch, now time.Time) (*Worker, error)
	SetWorkerStatus(ctx context.Context, id string, status WorkerStatus, verified *bool, now time.Time) (*Worker, error)
	IncrementWorkerStat(ctx context.Context, id string, stat StatField, now time.Time) error
	AppendPortfolio(ctx context.Context, id string, refs []string, now time.Time) (*Worker, error)
}

// workerFilter translates a WorkerQuery into a MongoDB filter document.
func workerFilter(q WorkerQuery) bson.M {
	filter := bson.M{}
	if q.UID != "" {
		filter["uid"] = q.UID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if len(q.SubServices) > 0 {
		filter["sub_services"] = bson.M{"$in": q.SubServices}
	}
	if q.City != "" {
		filter["location.city"] = q.City
	}
	if q.State != "" {
		filter["location.state"] = q.State
	}
	if q.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": q.MinRating}
	}
	if q.AvailableOnly {
		filter["available"] = true
	}
	if q.VerifiedOnly {
		filter["verified"] = true
	}
	return filter
}

func workerFindOptions(q WorkerQuery) *options.FindOptions {
	opts := options.Find()
	if q.SortByRating {
		opts.SetSort(bson.D{
			{Key: "rating", Value: -1},
			{Key: "review_count", Value: -1},
		})
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func (mdb *MongodbRepo) InsertWorker(ctx context.Context, worker *Worker) (*Worker, error) {
	col, err := mdb.GetCollection(ctx, WorkersColName)
	if err != nil {
		return nil, err
	}
	if worker.ID.IsZero() {
		worker.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, worker); err != nil {
		return nil, storeError("error inserting worker", err)
	}
	return worker, nil
}

func (mdb *MongodbRepo) FindWorkerByID(ctx context.Context, id string) (*Worker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	col, err := mdb.GetCollection(ctx, WorkersColName)
	if err != nil {
		return nil, err
	}

	var worker Worker
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&worker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("error finding worker", err)
	}
	return &worker, nil
}

func (mdb *MongodbRepo) FindWorkers(ctx context.Context, q WorkerQuery) ([]*Worker, error) {
	col, err := mdb.GetCollection(ctx, WorkersColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, workerFilter(q), workerFindOptions(q))
	if err != nil {
		return nil, storeError("error finding workers", err)
	}
	defer cursor.Close(ctx)

	workers := []*Worker{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, storeError("error decoding workers", err)
	}
	return workers, nil
}

// findOneAndSet applies update to the worker and returns the document after the write.
func (mdb *MongodbRepo) findOneAndSet(ctx context.Context, id string, update bson.M) (*Worker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	col, err := mdb.GetCollection(ctx, WorkersColName)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var worker Worker
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&worker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storeError("error updating worker", err)
	}
	return &worker, nil
}

func (mdb *MongodbRepo) UpdateWorker(ctx context.Context, id string, patch *WorkerPatch, now time.Time) (*Worker, error) {
	set := bson.M{}
	for k, v := range patch.SetFields() {
		set[k] = v
	}
	set["updated_at"] = now
	return mdb.findOneAndSet(ctx, id, bson.M{"$set": set})
}

func (mdb *MongodbRepo) SetWorkerStatus(ctx context.Context, id string, status WorkerStatus, verified *bool, now time.Time) (*Worker, error) {
	set := bson.M{
		"status":     status,
		"updated_at": now,
	}
	if verified != nil {
		set["verified"] = *verified
	}
	return mdb.findOneAndSet(ctx, id, bson.M{"$set": set})
}

// IncrementWorkerStat bumps one engagement counter with $inc. Unknown ids are a no-op.
func (mdb *MongodbRepo) IncrementWorkerStat(ctx context.Context, id string, stat StatField, now time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	col, err := mdb.GetCollection(ctx, WorkersColName)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"stats." + string(stat): 1},
		"$set": bson.M{"updated_at": now},
	}
	if _, err := col.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return storeError("error incrementing worker stat", err)
	}
	return nil
}

func (mdb *MongodbRepo) AppendPortfolio(ctx context.Context, id string, refs []string, now time.Time) (*Worker, error) {
	update := bson.M{
		"$push": bson.M{"portfolio": bson.M{"$each": refs}},
		"$set":  bson.M{"updated_at": now},
	}
	return mdb.findOneAndSet(ctx, id, update)
}
