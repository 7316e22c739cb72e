package votestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// DefaultCollection holds one document per contract and holder.
const DefaultCollection = "recorded_votes"

type allocationDoc struct {
	Recipient string `bson:"recipient"`
	Bps       int64  `bson:"bps"`
}

type voteDoc struct {
	ID          string          `bson:"_id"`
	Contract    string          `bson:"contract"`
	Holder      string          `bson:"holder"`
	BlockNumber int64           `bson:"blockNumber"`
	UpdatedAt   int64           `bson:"updatedAt"`
	Allocations []allocationDoc `bson:"allocations"`
}

// MongoStore reads and upserts recorded votes in a mongo collection,
// typically filled by an indexer following the voting contract.
type MongoStore struct {
	coll *mongo.Collection
}

var (
	_ Store  = (*MongoStore)(nil)
	_ Writer = (*MongoStore)(nil)
)

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// ConnectMongo dials uri and returns the store plus a disconnect func.
func ConnectMongo(ctx context.Context, uri, dbName, collection string) (*MongoStore, func(context.Context) error, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	ctx, stop := context.WithTimeout(ctx, 30*time.Second)
	defer stop()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return NewMongoStore(client.Database(dbName).Collection(collection)), client.Disconnect, nil
}

func (m *MongoStore) RecordedVotes(ctx context.Context, contract, holder sdk.Address) ([]voting.Allocation, error) {
	var doc voteDoc
	query := bson.D{{Key: "_id", Value: Key(contract, holder)}}
	err := m.coll.FindOne(ctx, query).Decode(&doc)
	if err != nil {
		// ErrNoDocuments means the holder never voted on this contract
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return fromDoc(&doc)
}

// Invalidate is a no-op, every read goes to the collection.
func (m *MongoStore) Invalidate(sdk.Address, sdk.Address) {}

func (m *MongoStore) Record(ctx context.Context, rec VoteRecord) error {
	if rec.UpdatedAt == 0 {
		rec.UpdatedAt = time.Now().Unix()
	}
	doc := toDoc(rec)
	query := bson.D{{Key: "_id", Value: doc.ID}}
	update := bson.D{
		{Key: "$set",
			Value: bson.D{
				{Key: "contract", Value: doc.Contract},
				{Key: "holder", Value: doc.Holder},
				{Key: "blockNumber", Value: doc.BlockNumber},
				{Key: "updatedAt", Value: doc.UpdatedAt},
				{Key: "allocations", Value: doc.Allocations},
			},
		},
	}
	_, err := m.coll.UpdateOne(ctx, query, update, options.Update().SetUpsert(true))
	return err
}

func toDoc(rec VoteRecord) voteDoc {
	doc := voteDoc{
		ID:          Key(rec.Contract, rec.Holder),
		Contract:    rec.Contract.Key(),
		Holder:      rec.Holder.Key(),
		BlockNumber: int64(rec.BlockNumber),
		UpdatedAt:   rec.UpdatedAt,
		Allocations: make([]allocationDoc, 0, len(rec.Allocations)),
	}
	for _, a := range rec.Allocations {
		doc.Allocations = append(doc.Allocations, allocationDoc{Recipient: a.Recipient.String(), Bps: int64(a.Bps)})
	}
	return doc
}

// fromDoc rejects documents a session could not seed from.
func fromDoc(doc *voteDoc) ([]voting.Allocation, error) {
	out := make([]voting.Allocation, 0, len(doc.Allocations))
	for _, a := range doc.Allocations {
		if a.Bps < 0 || a.Bps > voting.MaxBps {
			return nil, fmt.Errorf("%w: %d bps for %s", voting.ErrInvalidAllocationValue, a.Bps, a.Recipient)
		}
		out = append(out, voting.Allocation{Recipient: voting.RecipientID(a.Recipient), Bps: uint32(a.Bps)})
	}
	return out, nil
}
