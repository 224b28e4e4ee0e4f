package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo is the persistence gateway for seeker accounts. Lookups return
// (nil, nil) when the record does not exist.
type UserRepo interface {
	InsertUser(ctx context.Context, user *Seeker) (*Seeker, error)
	FindUserByID(ctx context.Context, id string) (*Seeker, error)
	FindUserByUID(ctx context.Context, uid string) (*Seeker, error)
	UserEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id string, patch *UserPatch, now time.Time) (*Seeker, error)
	AddFavourite(ctx context.Context, userId, workerId string, now time.Time) error
	RemoveFavourite(ctx context.Context, userId, workerId string, now time.Time) error
	AppendSearchHistory(ctx context.Context, userId string, entry SearchEntry, now time.Time) error
}

func (mdb *MongodbRepo) InsertUser(ctx context.Context, user *Seeker) (*Seeker, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user %s: %w", user.Email, ErrConflict)
		}
		return nil, storeError("error inserting user", err)
	}
	return user, nil
}

func (mdb *MongodbRepo) findUser(ctx context.Context, filter bson.M) (*Seeker, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, err
	}

	var user Seeker
	err = col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("error finding user", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) FindUserByID(ctx context.Context, id string) (*Seeker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return mdb.findUser(ctx, bson.M{"_id": oid})
}

func (mdb *MongodbRepo) FindUserByUID(ctx context.Context, uid string) (*Seeker, error) {
	return mdb.findUser(ctx, bson.M{"uid": uid})
}

func (mdb *MongodbRepo) UserEmailExists(ctx context.Context, email string) (bool, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return false, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	count, err := col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, storeError("error counting users", err)
	}
	return count > 0, nil
}

func (mdb *MongodbRepo) UpdateUser(ctx context.Context, id string, patch *UserPatch, now time.Time) (*Seeker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for k, v := range patch.SetFields() {
		set[k] = v
	}
	set["updated_at"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user Seeker
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storeError("error updating user", err)
	}
	return &user, nil
}

// updateSeeker runs a single-document update restricted to seekers and
// reports ErrNotFound when no seeker matched.
func (mdb *MongodbRepo) updateSeeker(ctx context.Context, userId string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return fmt.Errorf("seeker %s: %w", userId, ErrNotFound)
	}
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid, "user_type": UserTypeSeeker}, update)
	if err != nil {
		return storeError("error updating seeker", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("seeker %s: %w", userId, ErrNotFound)
	}
	return nil
}

func (mdb *MongodbRepo) AddFavourite(ctx context.Context, userId, workerId string, now time.Time) error {
	return mdb.updateSeeker(ctx, userId, bson.M{
		"$addToSet": bson.M{"favorites": workerId},
		"$set":      bson.M{"updated_at": now},
	})
}

func (mdb *MongodbRepo) RemoveFavourite(ctx context.Context, userId, workerId string, now time.Time) error {
	return mdb.updateSeeker(ctx, userId, bson.M{
		"$pull": bson.M{"favorites": workerId},
		"$set":  bson.M{"updated_at": now},
	})
}

func (mdb *MongodbRepo) AppendSearchHistory(ctx context.Context, userId string, entry SearchEntry, now time.Time) error {
	return mdb.updateSeeker(ctx, userId, bson.M{
		"$push": bson.M{"search_history": entry},
		"$set":  bson.M{"updated_at": now},
	})
}
