package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediavault/mediavault/internal/usecase"
)

// Asset is the stored shape of one file record.
type Asset struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Filename   string             `bson:"filename"`
	FileURL    string             `bson:"fileUrl"`
	UploadedAt time.Time          `bson:"uploadedAt"`
}

const assetCollection = "files"

func (s *service) assets() *mongo.Collection {
	return s.db.Collection(assetCollection)
}

// InsertAssets bulk-inserts records in input order. Assigned ids are
// read back from the insert result, so a partial bulk failure still
// returns the documents that made it in alongside the error.
func (s *service) InsertAssets(ctx context.Context, assets []usecase.Asset) ([]usecase.Asset, error) {
	now := time.Now()

	docs := make([]any, 0, len(assets))
	for _, a := range assets {
		docs = append(docs, Asset{
			Filename:   a.Filename,
			FileURL:    a.FileURL,
			UploadedAt: now,
		})
	}

	res, err := s.assets().InsertMany(ctx, docs)

	var saved []usecase.Asset
	if res != nil {
		saved = make([]usecase.Asset, 0, len(res.InsertedIDs))
		for i, id := range res.InsertedIDs {
			oid, ok := id.(primitive.ObjectID)
			if !ok {
				continue
			}
			saved = append(saved, usecase.Asset{
				ID:         oid.Hex(),
				Filename:   assets[i].Filename,
				FileURL:    assets[i].FileURL,
				UploadedAt: now,
			})
		}
	}
	return saved, err
}

func (s *service) ListAssets(ctx context.Context) ([]usecase.Asset, error) {
	cur, err := s.assets().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var list []usecase.Asset
	for cur.Next(ctx) {
		var a Asset
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		list = append(list, usecase.Asset{
			ID:         a.ID.Hex(),
			Filename:   a.Filename,
			FileURL:    a.FileURL,
			UploadedAt: a.UploadedAt,
		})
	}
	return list, cur.Err()
}

// GetAssetByID treats a malformed id the same as an unknown one.
func (s *service) GetAssetByID(ctx context.Context, id string) (usecase.Asset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usecase.Asset{}, usecase.ErrNotFound
	}

	var a Asset
	err = s.assets().FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return usecase.Asset{}, usecase.ErrNotFound
	}
	if err != nil {
		return usecase.Asset{}, err
	}

	return usecase.Asset{
		ID:         a.ID.Hex(),
		Filename:   a.Filename,
		FileURL:    a.FileURL,
		UploadedAt: a.UploadedAt,
	}, nil
}

func (s *service) DeleteAssetByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrNotFound
	}

	res, err := s.assets().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
